package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"fixdict/internal/dict"
	"fixdict/internal/driver"
)

var generateCmd = &cobra.Command{
	Use:   "generate [flags] <rows.csv>",
	Short: "Build a FIX dictionary from a tabular message definition",
	Long:  `Build a FIX dictionary XML file from a CSV that lists message elements row by row`,
	Args:  cobra.ExactArgs(1),
	RunE:  runGenerate,
}

func init() {
	generateCmd.Flags().StringP("output", "o", "custom.xml", "output dictionary path")
	generateCmd.Flags().String("protocol-type", "FIX", "protocol type attribute of the document root")
	generateCmd.Flags().String("major", "4", "protocol major version")
	generateCmd.Flags().String("minor", "4", "protocol minor version")
	generateCmd.Flags().String("servicepack", "0", "protocol service pack")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	outPath, err := cmd.Flags().GetString("output")
	if err != nil {
		return fmt.Errorf("failed to get output flag: %w", err)
	}
	proto := dict.Protocol{}
	if proto.Type, err = cmd.Flags().GetString("protocol-type"); err != nil {
		return fmt.Errorf("failed to get protocol-type flag: %w", err)
	}
	if proto.Major, err = cmd.Flags().GetString("major"); err != nil {
		return fmt.Errorf("failed to get major flag: %w", err)
	}
	if proto.Minor, err = cmd.Flags().GetString("minor"); err != nil {
		return fmt.Errorf("failed to get minor flag: %w", err)
	}
	if proto.ServicePack, err = cmd.Flags().GetString("servicepack"); err != nil {
		return fmt.Errorf("failed to get servicepack flag: %w", err)
	}

	maxDiags, err := maxDiagnostics(cmd)
	if err != nil {
		return err
	}
	opts, err := reportOpts(cmd)
	if err != nil {
		return err
	}

	res, err := driver.Generate(args[0], outPath, proto, maxDiags)
	if err != nil {
		return err
	}
	if err := printBag(cmd, res.Bag, opts); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s: %d messages, %d components, %d fields\n",
		outPath, res.Messages, res.Components, res.Fields)
	return nil
}

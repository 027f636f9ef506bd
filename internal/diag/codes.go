package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Definition builder (generate stage)
	BldInfo           Code = 1000
	BldDuplicateField Code = 1001
	BldFieldConflict  Code = 1002
	BldBadEnumValue   Code = 1003
	BldEmptySource    Code = 1005
	BldBadTagNumber   Code = 1006
	BldUnknownKind    Code = 1007

	// Dictionary merger
	MrgInfo              Code = 2000
	MrgOverlayDuplicate  Code = 2001
	MrgTagConflict       Code = 2002
	MrgTagAlreadyDefined Code = 2003
	MrgNoMsgTypeField    Code = 2004

	// Reachability pruner
	PrnInfo              Code = 3000
	PrnUnmatchedKeep     Code = 3001
	PrnEmptyWhitelist    Code = 3002

	// Document structure
	DocInfo              Code = 4000
	DocDanglingComponent Code = 4001
	DocDanglingGroup     Code = 4002
	DocDanglingField     Code = 4003
)

var codeDescription = map[Code]string{
	UnknownCode:          "Unknown error",
	BldInfo:              "Builder information",
	BldDuplicateField:    "Duplicate field declaration (same tag, same definition)",
	BldFieldConflict:     "Element redeclared with a different tag or data type",
	BldBadEnumValue:      "Invalid enum value format",
	BldEmptySource:       "Source contains no rows",
	BldBadTagNumber:      "Tag number is not an integer",
	BldUnknownKind:       "Unknown element kind",
	MrgInfo:              "Merge information",
	MrgOverlayDuplicate:  "Tag declared multiple times in overlay dictionary",
	MrgTagConflict:       "Tag defined with a different name or type in overlay",
	MrgTagAlreadyDefined: "Tag already defined in base dictionary (same name and type)",
	MrgNoMsgTypeField:    "Base dictionary has no message-type field",
	PrnInfo:              "Prune information",
	PrnUnmatchedKeep:     "Whitelist entry matches no message",
	PrnEmptyWhitelist:    "Whitelist is empty, only header/trailer closure retained",
	DocInfo:              "Document information",
	DocDanglingComponent: "Member references an unknown component",
	DocDanglingGroup:     "Group references an unknown field",
	DocDanglingField:     "Member references an unknown field",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("BLD%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("MRG%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("PRN%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("DOC%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[Code(0)]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}

package tabular

import (
	"strings"
	"testing"
)

func TestReadRows(t *testing.T) {
	src := strings.Join([]string{
		"msg_type,msg_name,tag_number,element_name,element_type,data_type,required,enum_values",
		"D,NewOrder,11,ClOrdID,field,STRING,Y,",
		"D,NewOrder,40,OrdType,field,CHAR,y,1:Market|2:Limit",
	}, "\n")

	rows, err := ReadRows(strings.NewReader(src))
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].MsgType != "D" || rows[0].ElementName != "ClOrdID" || rows[0].TagNumber != "11" {
		t.Fatalf("unexpected first row: %+v", rows[0])
	}
	if rows[1].EnumValues != "1:Market|2:Limit" {
		t.Fatalf("unexpected enum cell: %q", rows[1].EnumValues)
	}
	// required flag is returned raw, case handling is the builder's job
	if rows[1].Required != "y" {
		t.Fatalf("expected raw required flag, got %q", rows[1].Required)
	}
}

func TestReadRowsWithoutEnumColumn(t *testing.T) {
	src := strings.Join([]string{
		"msg_type,msg_name,tag_number,element_name,element_type,data_type,required",
		"8,ExecReport,150,ExecType,field,CHAR,N",
	}, "\n")

	rows, err := ReadRows(strings.NewReader(src))
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if len(rows) != 1 || rows[0].EnumValues != "" {
		t.Fatalf("expected one row with empty enum cell, got %+v", rows)
	}
}

func TestReadRowsMissingColumn(t *testing.T) {
	src := "msg_type,msg_name,tag_number,element_name,data_type,required\nD,NewOrder,11,ClOrdID,STRING,Y"
	if _, err := ReadRows(strings.NewReader(src)); err == nil {
		t.Fatalf("expected error for missing element_type column")
	}
}

func TestReadRowsEmptySource(t *testing.T) {
	if _, err := ReadRows(strings.NewReader("")); err == nil {
		t.Fatalf("expected error for empty source")
	}
}

func TestReadRowsTrimsCells(t *testing.T) {
	src := strings.Join([]string{
		"msg_type,msg_name,tag_number,element_name,element_type,data_type,required",
		" D , NewOrder , 11 , ClOrdID , field , STRING , Y ",
	}, "\n")

	rows, err := ReadRows(strings.NewReader(src))
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if rows[0].MsgName != "NewOrder" || rows[0].DataType != "STRING" {
		t.Fatalf("cells not trimmed: %+v", rows[0])
	}
}

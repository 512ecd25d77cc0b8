package esi

import (
	"fmt"
	"testing"

	"github.com/pollen-robotics/esigen/internal/types"
)

// newMyDeviceDocument builds the single-device document used by the
// generated-file examples: one Tx and one Rx group with one UINT32 entry each.
func newMyDeviceDocument() *types.Document {
	doc := types.NewDocument().SetVendor("#xF3F", "Pollen Robotics SAS")

	dev := types.NewDevice("MyDevice")
	dev.AddTxPDO(types.NewPDOGroup("MyInputPDO", 0).
		AddEntry(types.Entry{Name: "MyInput", Type: types.EntryTypeUINT32}))
	dev.AddRxPDO(types.NewPDOGroup("MyOutputPDO", 0).
		AddEntry(types.Entry{Name: "MyOutput", Type: types.EntryTypeUINT32}))

	return doc.AddDevice(dev)
}

func newOrbitaDocument(axes int) *types.Document {
	doc := types.NewDocument().
		SetVendor("0xF3F", "Pollen Robotcs SAS").
		SetGroup("", "Pollen PYESI")

	dev := types.NewDevice(fmt.Sprintf("TestOrbita%dd", axes))
	dev.EnableSDOAccess = true
	dev.EnableFileAccessOverEtherCAT = true

	dev.AddSyncManager(types.NewSyncManager("MBoxOut", "1000", types.SyncManagerMailbox, types.DirectionRx).WithDefaultSize(128)).
		AddSyncManager(types.NewSyncManager("MBoxIn", "1180", types.SyncManagerMailbox, types.DirectionTx).WithDefaultSize(128)).
		AddSyncManager(types.NewSyncManager("OrbitaIn", "1300", types.SyncManagerBuffered, types.DirectionRx)).
		AddSyncManager(types.NewSyncManager("OrbitaOut", "1400", types.SyncManagerBuffered, types.DirectionTx))

	axisEntries := func(p *types.PDOGroup, name string, typ types.EntryType, index string) {
		for i := 1; i <= axes; i++ {
			p.AddEntry(types.Entry{Name: name, Type: typ, Index: index, SubIndex: uint(i)})
		}
	}

	in := types.NewPDOGroup("OrbitaIn", 2).
		AddEntry(types.Entry{Name: "controlword", Type: types.EntryTypeUINT16, Index: "0x6041"}).
		AddEntry(types.Entry{Name: "mode_of_operation", Type: types.EntryTypeUINT8, Index: "0x6060"})
	axisEntries(in, "target_position", types.EntryTypeREAL, "0x607A")
	axisEntries(in, "target_velocity", types.EntryTypeREAL, "0x60FF")
	axisEntries(in, "velocity_limit", types.EntryTypeREAL, "0x607F")
	axisEntries(in, "target_torque", types.EntryTypeREAL, "0x6071")
	axisEntries(in, "torque_limit", types.EntryTypeREAL, "0x6072")
	dev.AddRxPDO(in)

	out := types.NewPDOGroup("OrbitaOut", 3).
		AddEntry(types.Entry{Name: "statusword", Type: types.EntryTypeUINT16, Index: "0x6040"}).
		AddEntry(types.Entry{Name: "mode_of_operation_display", Type: types.EntryTypeUINT8, Index: "0x6061"})
	axisEntries(out, "actual_position", types.EntryTypeREAL, "0x6064")
	axisEntries(out, "actual_velocity", types.EntryTypeREAL, "0x606C")
	axisEntries(out, "actual_torque", types.EntryTypeREAL, "0x6077")
	axisEntries(out, "actual_axis_position", types.EntryTypeREAL, "0x6063")
	dev.AddTxPDO(out)

	state := types.NewPDOGroup("OrbitaState", 3).
		AddEntry(types.Entry{Name: "error_code", Type: types.EntryTypeUINT16, Index: "0x603F"})
	axisEntries(state, "error_code", types.EntryTypeUINT16, "0x603F")
	state.AddEntry(types.Entry{Name: "actuator_type", Type: types.EntryTypeUINT8, Index: "0x6402"})
	axisEntries(state, "axis_position_zero_offset", types.EntryTypeREAL, "0x607C")
	axisEntries(state, "board_temperatures", types.EntryTypeREAL, "0x6500")
	axisEntries(state, "motor_temperatures", types.EntryTypeREAL, "0x6501")
	dev.AddTxPDO(state)

	return doc.AddDevice(dev)
}

func firstDevice(t *testing.T, root *Element) *Element {
	t.Helper()
	devices := root.Find("Descriptions").Find("Devices")
	if devices == nil {
		t.Fatal("Descriptions/Devices missing")
	}
	dev := devices.Find("Device")
	if dev == nil {
		t.Fatal("Device missing")
	}
	return dev
}

func childTags(e *Element) []string {
	var tags []string
	for _, c := range e.Children {
		switch v := c.(type) {
		case *Element:
			tags = append(tags, v.Tag)
		case Comment:
			tags = append(tags, "#comment")
		}
	}
	return tags
}

func TestRenderRoot(t *testing.T) {
	root := Render(newMyDeviceDocument())

	if root.Tag != "EtherCATInfo" {
		t.Fatalf("root tag = %q, want EtherCATInfo", root.Tag)
	}

	wantAttrs := []Attr{
		{"xmlns:xsi", "http://www.w3.org/2001/XMLSchema-instance"},
		{"xsi:noNamespaceSchemaLocation", "EtherCATInfo.xsd"},
		{"Version", "1.6"},
	}
	if len(root.Attrs) != len(wantAttrs) {
		t.Fatalf("root attrs = %v, want %v", root.Attrs, wantAttrs)
	}
	for i, a := range wantAttrs {
		if root.Attrs[i] != a {
			t.Errorf("root attr[%d] = %v, want %v", i, root.Attrs[i], a)
		}
	}

	vendor := root.Find("Vendor")
	if got := vendor.Find("Id").Text; got != "#xF3F" {
		t.Errorf("Vendor/Id = %q, want #xF3F", got)
	}
	if got := vendor.Find("Name").Text; got != "Pollen Robotics SAS" {
		t.Errorf("Vendor/Name = %q", got)
	}
	if got := vendor.Find("ImageData16x14").Text; got != vendorImage {
		t.Error("Vendor/ImageData16x14 does not match the fixed bitmap")
	}

	group := root.Find("Descriptions").Find("Groups").Find("Group")
	if v, _ := group.Attr("SortOrder"); v != "0" {
		t.Errorf("Group@SortOrder = %q, want 0", v)
	}
	if got := group.Find("Type").Text; got != types.DefaultGroupType {
		t.Errorf("Group/Type = %q, want %q", got, types.DefaultGroupType)
	}
	name := group.Find("Name")
	if v, _ := name.Attr("LcId"); v != "1033" {
		t.Errorf("Group/Name@LcId = %q, want 1033", v)
	}
	if name.Text != types.DefaultGroupName {
		t.Errorf("Group/Name = %q, want %q", name.Text, types.DefaultGroupName)
	}
	if got := group.Find("ImageData16x14").Text; got != groupImage {
		t.Error("Group/ImageData16x14 does not match the fixed bitmap")
	}
}

func TestRenderDeviceLayout(t *testing.T) {
	doc := newOrbitaDocument(1)
	dev := firstDevice(t, Render(doc))

	want := []string{
		"#comment", "Type", "Name", "GroupType",
		"Fmmu", "Fmmu", "Fmmu", "Fmmu",
		"Sm", "Sm", "Sm", "Sm",
		"#comment", "RxPdo",
		"#comment", "TxPdo",
		"#comment", "TxPdo",
		"Mailbox", "Dc", "Eeprom",
	}
	got := childTags(dev)
	if fmt.Sprint(got) != fmt.Sprint(want) {
		t.Fatalf("device children =\n%v\nwant\n%v", got, want)
	}

	comments := dev.Comments()
	wantComments := []string{"TestOrbita1d Device", "OrbitaIn PDOs", "OrbitaOut PDOs", "OrbitaState PDOs"}
	if fmt.Sprint(comments) != fmt.Sprint(wantComments) {
		t.Errorf("comments = %q, want %q", comments, wantComments)
	}

	typ := dev.Find("Type")
	for _, a := range []Attr{{"ProductCode", "#x1"}, {"RevisionNo", "#x1"}, {"CheckRevisionNo", "EQ_OR_G"}} {
		if v, _ := typ.Attr(a.Name); v != a.Value {
			t.Errorf("Type@%s = %q, want %q", a.Name, v, a.Value)
		}
	}
	if typ.Text != "TestOrbita1d" {
		t.Errorf("Type text = %q", typ.Text)
	}
	if got := dev.Find("GroupType").Text; got != "SSC_Device" {
		t.Errorf("GroupType = %q, want SSC_Device", got)
	}
}

func TestRenderSyncManagers(t *testing.T) {
	dev := firstDevice(t, Render(newOrbitaDocument(1)))

	tests := []struct {
		name  string
		attrs []Attr
	}{
		{"MBoxOut", []Attr{{"StartAddress", "#x1000"}, {"DefaultSize", "128"}, {"ControlByte", "#x26"}, {"Enable", "1"}}},
		{"MBoxIn", []Attr{{"StartAddress", "#x1180"}, {"DefaultSize", "128"}, {"ControlByte", "#x22"}, {"Enable", "1"}}},
		{"OrbitaIn", []Attr{{"StartAddress", "#x1300"}, {"ControlByte", "#x64"}, {"Enable", "1"}}},
		{"OrbitaOut", []Attr{{"StartAddress", "#x1400"}, {"ControlByte", "#x20"}, {"Enable", "1"}}},
	}

	sms := dev.FindAll("Sm")
	fmmus := dev.FindAll("Fmmu")
	if len(sms) != len(tests) || len(fmmus) != len(tests) {
		t.Fatalf("got %d Sm and %d Fmmu, want %d each", len(sms), len(fmmus), len(tests))
	}

	for i, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if sms[i].Text != tc.name {
				t.Errorf("Sm text = %q, want %q", sms[i].Text, tc.name)
			}
			if fmmus[i].Text != tc.name {
				t.Errorf("Fmmu text = %q, want %q", fmmus[i].Text, tc.name)
			}
			if fmt.Sprint(sms[i].Attrs) != fmt.Sprint(tc.attrs) {
				t.Errorf("Sm attrs = %v, want %v", sms[i].Attrs, tc.attrs)
			}
		})
	}
}

func TestRenderDisabledSyncManager(t *testing.T) {
	doc := types.NewDocument()
	sm := types.NewSyncManager("Spare", "1600", types.SyncManagerBuffered, types.DirectionTx)
	sm.Enabled = false
	doc.AddDevice(types.NewDevice("D").AddSyncManager(sm))

	el := firstDevice(t, Render(doc)).Find("Sm")
	if v, _ := el.Attr("Enable"); v != "0" {
		t.Errorf("Enable = %q, want 0", v)
	}
	if _, ok := el.Attr("DefaultSize"); ok {
		t.Error("DefaultSize should be omitted when unset")
	}
}

func TestRenderPDOIndices(t *testing.T) {
	dev := types.NewDevice("D")
	for i := 0; i < 3; i++ {
		dev.AddRxPDO(types.NewPDOGroup(fmt.Sprintf("rx%d", i), 0))
	}
	for i := 0; i < 2; i++ {
		dev.AddTxPDO(types.NewPDOGroup(fmt.Sprintf("tx%d", i), 1))
	}
	el := firstDevice(t, Render(types.NewDocument().AddDevice(dev)))

	var got []string
	for _, p := range el.FindAll("RxPdo") {
		got = append(got, p.Find("Index").Text)
	}
	for _, p := range el.FindAll("TxPdo") {
		got = append(got, p.Find("Index").Text)
	}

	for k, idx := range got {
		want := fmt.Sprintf("#x%d", 1600+100*k)
		if idx != want {
			t.Errorf("PDO %d index = %q, want %q", k, idx, want)
		}
	}
	if len(got) != 5 {
		t.Errorf("got %d PDOs, want 5", len(got))
	}
}

func TestRenderTxOnlyStartsAt1600(t *testing.T) {
	dev := types.NewDevice("D").AddTxPDO(types.NewPDOGroup("out", 0))
	el := firstDevice(t, Render(types.NewDocument().AddDevice(dev)))

	if got := el.Find("TxPdo").Find("Index").Text; got != "#x1600" {
		t.Errorf("TxPdo index = %q, want #x1600", got)
	}
}

func TestRenderEntryIndices(t *testing.T) {
	dev := types.NewDevice("D").
		AddRxPDO(types.NewPDOGroup("in", 0).
			AddEntry(types.Entry{Name: "a", Type: types.EntryTypeUINT8}).
			AddEntry(types.Entry{Name: "fixed", Type: types.EntryTypeUINT16, Index: "6041", SubIndex: 2}).
			AddEntry(types.Entry{Name: "b", Type: types.EntryTypeUINT8})).
		AddTxPDO(types.NewPDOGroup("out", 1).
			AddEntry(types.Entry{Name: "c", Type: types.EntryTypeREAL}).
			AddEntry(types.Entry{Name: "d", Type: types.EntryTypeUINT32}))

	el := firstDevice(t, Render(types.NewDocument().AddDevice(dev)))

	type row struct{ index, sub, bitlen, name, dataType string }
	var got []row
	for _, tag := range []string{"RxPdo", "TxPdo"} {
		for _, e := range el.Find(tag).FindAll("Entry") {
			got = append(got, row{
				e.Find("Index").Text,
				e.Find("SubIndex").Text,
				e.Find("BitLen").Text,
				e.Find("Name").Text,
				e.Find("DataType").Text,
			})
		}
	}

	want := []row{
		{"#x10", "0", "8", "a", "UINT8"},
		{"#x6041", "2", "16", "fixed", "UINT16"},
		{"#x11", "0", "8", "b", "UINT8"},
		{"#x12", "0", "32", "c", "REAL"},
		{"#x13", "0", "32", "d", "UINT32"},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d entries, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("entry %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestRenderCountersResetPerDevice(t *testing.T) {
	doc := types.NewDocument()
	for i := 0; i < 2; i++ {
		doc.AddDevice(types.NewDevice(fmt.Sprintf("D%d", i)).
			AddRxPDO(types.NewPDOGroup("in", 0).
				AddEntry(types.Entry{Name: "x", Type: types.EntryTypeUINT8})))
	}

	devices := Render(doc).Find("Descriptions").Find("Devices").FindAll("Device")
	if len(devices) != 2 {
		t.Fatalf("got %d devices, want 2", len(devices))
	}
	for i, d := range devices {
		pdo := d.Find("RxPdo")
		if got := pdo.Find("Index").Text; got != "#x1600" {
			t.Errorf("device %d PDO index = %q, want #x1600", i, got)
		}
		if got := pdo.Find("Entry").Find("Index").Text; got != "#x10" {
			t.Errorf("device %d entry index = %q, want #x10", i, got)
		}
	}
}

func TestRenderMailbox(t *testing.T) {
	tests := []struct {
		name     string
		sdo, foe bool
		mailbox  bool
		wantFoE  bool
	}{
		{"disabled", false, false, false, false},
		{"foe without sdo", false, true, false, false},
		{"sdo only", true, false, true, false},
		{"sdo and foe", true, true, true, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			dev := types.NewDevice("D")
			dev.EnableSDOAccess = tc.sdo
			dev.EnableFileAccessOverEtherCAT = tc.foe

			mb := firstDevice(t, Render(types.NewDocument().AddDevice(dev))).Find("Mailbox")
			if (mb != nil) != tc.mailbox {
				t.Fatalf("Mailbox present = %v, want %v", mb != nil, tc.mailbox)
			}
			if mb == nil {
				return
			}

			if v, _ := mb.Attr("DataLinkLayer"); v != "true" {
				t.Errorf("Mailbox@DataLinkLayer = %q, want true", v)
			}
			coe := mb.Find("CoE")
			if coe == nil {
				t.Fatal("CoE missing")
			}
			want := []Attr{
				{"SdoInfo", "true"},
				{"PdoAssign", "false"},
				{"PdoConfig", "false"},
				{"CompleteAccess", "false"},
				{"SegmentedSdo", "true"},
			}
			if fmt.Sprint(coe.Attrs) != fmt.Sprint(want) {
				t.Errorf("CoE attrs = %v, want %v", coe.Attrs, want)
			}
			if (mb.Find("FoE") != nil) != tc.wantFoE {
				t.Errorf("FoE present = %v, want %v", mb.Find("FoE") != nil, tc.wantFoE)
			}
		})
	}
}

func TestRenderDcBlock(t *testing.T) {
	dc := firstDevice(t, Render(newMyDeviceDocument())).Find("Dc")
	if dc == nil {
		t.Fatal("Dc missing")
	}

	modes := dc.FindAll("OpMode")
	if len(modes) != 2 {
		t.Fatalf("got %d OpMode, want 2", len(modes))
	}
	if got := modes[0].Find("Name").Text; got != "SM_Sync or Async" {
		t.Errorf("OpMode[0]/Name = %q", got)
	}
	if got := modes[0].Find("AssignActivate").Text; got != "#x0000" {
		t.Errorf("OpMode[0]/AssignActivate = %q", got)
	}
	if got := modes[1].Find("AssignActivate").Text; got != "#x300" {
		t.Errorf("OpMode[1]/AssignActivate = %q", got)
	}
	cycle := modes[1].Find("CycleTimeSync0")
	if v, _ := cycle.Attr("Factor"); v != "1" || cycle.Text != "0" {
		t.Errorf("CycleTimeSync0 = %q (Factor=%q), want 0 (Factor=1)", cycle.Text, v)
	}
	if got := modes[1].Find("ShiftTimeSync0").Text; got != "2000200000" {
		t.Errorf("ShiftTimeSync0 = %q", got)
	}
}

func TestRenderEeprom(t *testing.T) {
	doc := newMyDeviceDocument()

	ee := firstDevice(t, Render(doc)).Find("Eeprom")
	if ee == nil {
		t.Fatal("Eeprom missing with LAN9252 profile enabled")
	}
	if got := ee.Find("ByteSize").Text; got != "4096" {
		t.Errorf("ByteSize = %q, want 4096", got)
	}
	if got := len(ee.Comments()); got != len(eepromComments) {
		t.Errorf("got %d comments, want %d", got, len(eepromComments))
	}

	doc.UseLAN9252Profile = false
	if firstDevice(t, Render(doc)).Find("Eeprom") != nil {
		t.Error("Eeprom present with LAN9252 profile disabled")
	}
}

func TestRenderEmptyDocument(t *testing.T) {
	root := Render(types.NewDocument())

	devices := root.Find("Descriptions").Find("Devices")
	if devices == nil {
		t.Fatal("Devices element missing")
	}
	if len(devices.Children) != 0 {
		t.Errorf("Devices has %d children, want 0", len(devices.Children))
	}
}

func TestRenderLocale(t *testing.T) {
	doc := newMyDeviceDocument()
	doc.Locale = "de-DE"

	root := Render(doc)
	group := root.Find("Descriptions").Find("Groups").Find("Group")
	if v, _ := group.Find("Name").Attr("LcId"); v != "1031" {
		t.Errorf("Group/Name@LcId = %q, want 1031", v)
	}
	if v, _ := firstDevice(t, root).Find("Name").Attr("LcId"); v != "1031" {
		t.Errorf("Device/Name@LcId = %q, want 1031", v)
	}
}

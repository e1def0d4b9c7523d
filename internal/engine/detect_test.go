package engine

import "testing"

func TestDetectFullNameColumn(t *testing.T) {
	tests := []struct {
		name    string
		headers []string
		want    string // expected SourceHeader, "" means nil
	}{
		{"explicit full name", []string{"Full Name", "Email"}, "Full Name"},
		{"bare name", []string{"Name", "Phone"}, "Name"},
		{"client name", []string{"Client Name", "Email"}, "Client Name"},
		{"bare contact", []string{"Contact", "Email"}, "Contact"},
		// Separate first/last columns suppress detection.
		{"already split", []string{"First Name", "Last Name", "Name"}, ""},
		{"abbreviated split", []string{"fname", "lname", "Full Name"}, ""},
		// Only one half present does not suppress.
		{"first only", []string{"First Name", "Full Name"}, "Full Name"},
		{"nothing name-like", []string{"Email", "Phone"}, ""},
	}

	for _, tt := range tests {
		got := DetectFullNameColumn(tt.headers)
		if tt.want == "" {
			if got != nil {
				t.Errorf("%s: expected nil, got %+v", tt.name, got)
			}
			continue
		}
		if got == nil || got.SourceHeader != tt.want {
			t.Errorf("%s: got %+v, want source %q", tt.name, got, tt.want)
		}
	}
}

func TestDetectFullNameColumnPriority(t *testing.T) {
	// "fullname" pattern outranks "client" even when Client appears first.
	got := DetectFullNameColumn([]string{"Client", "Full Name"})
	if got == nil || got.SourceHeader != "Full Name" {
		t.Errorf("expected Full Name to win, got %+v", got)
	}
}

func TestDetectAddressComponentColumns(t *testing.T) {
	headers := []string{"Zip", "Email", "City", "Street Address 1", "State", "Country"}
	components := DetectAddressComponentColumns(headers)

	if len(components) != 5 {
		t.Fatalf("expected 5 components, got %d: %+v", len(components), components)
	}

	// Sorted by role order, not header position.
	wantOrder := []AddressRole{RoleStreet1, RoleCity, RoleState, RoleZip, RoleCountry}
	for i, want := range wantOrder {
		if components[i].Role != want {
			t.Errorf("component %d: role %s, want %s", i, components[i].Role, want)
		}
	}
}

func TestDetectAddressComponentFirstRoleWins(t *testing.T) {
	// "Address" matches the standalone-address role, not street1.
	components := DetectAddressComponentColumns([]string{"Address"})
	if len(components) != 1 || components[0].Role != RoleAddress {
		t.Fatalf("unexpected classification: %+v", components)
	}

	components = DetectAddressComponentColumns([]string{"Address Line 1"})
	if len(components) != 1 || components[0].Role != RoleStreet1 {
		t.Fatalf("unexpected classification: %+v", components)
	}
}

func TestConsolidateAddress(t *testing.T) {
	components := []AddressComponent{
		{SourceHeader: "Street", Role: RoleStreet1, Order: 1},
		{SourceHeader: "City", Role: RoleCity, Order: 4},
		{SourceHeader: "State", Role: RoleState, Order: 5},
		{SourceHeader: "Zip", Role: RoleZip, Order: 6},
	}
	row := Row{"Street": "123 Main St", "City": "Austin", "State": "", "Zip": "78701"}

	got := ConsolidateAddress(row, components, ", ")
	want := "123 Main St, Austin, 78701"
	if got != want {
		t.Errorf("ConsolidateAddress = %q, want %q", got, want)
	}
}

func TestConsolidateAddressEdgeCases(t *testing.T) {
	components := []AddressComponent{
		{SourceHeader: "A", Role: RoleStreet1, Order: 1},
		{SourceHeader: "B", Role: RoleCity, Order: 4},
	}

	// All components empty.
	if got := ConsolidateAddress(Row{"A": " ", "B": ""}, components, ", "); got != "" {
		t.Errorf("expected empty result, got %q", got)
	}

	// Values carrying their own trailing commas do not double up.
	got := ConsolidateAddress(Row{"A": "123 Main St,", "B": "Austin"}, components, ", ")
	if got != "123 Main St, Austin" {
		t.Errorf("comma collapse failed: %q", got)
	}

	// Unordered component slices are sorted by Order before joining.
	reversed := []AddressComponent{components[1], components[0]}
	got = ConsolidateAddress(Row{"A": "123 Main St", "B": "Austin"}, reversed, ", ")
	if got != "123 Main St, Austin" {
		t.Errorf("order sort failed: %q", got)
	}
}

func TestConsolidateAddresses(t *testing.T) {
	components := []AddressComponent{
		{SourceHeader: "Street", Role: RoleStreet1, Order: 1},
		{SourceHeader: "City", Role: RoleCity, Order: 4},
	}
	rows := []Row{
		{"Street": "1 First Ave", "City": "Boston"},
		{"Street": "", "City": ""},
	}

	out, partial := ConsolidateAddresses(rows, components, ", ")

	if out[0]["Address"] != "1 First Ave, Boston" {
		t.Errorf("unexpected address: %q", out[0]["Address"])
	}
	if out[1]["Address"] != "" {
		t.Errorf("expected empty address, got %q", out[1]["Address"])
	}
	if partial.AddressesConsolidated != 1 {
		t.Errorf("expected 1 consolidation counted, got %d", partial.AddressesConsolidated)
	}
	if _, ok := rows[0]["Address"]; ok {
		t.Error("ConsolidateAddresses mutated its input")
	}
}

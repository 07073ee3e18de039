package discovery

import (
	"encoding/json"
	"testing"
)

func TestDevice_String(t *testing.T) {
	device := Device{
		FriendlyName: "Living Room TV",
		IP:           "192.168.1.20",
		MAC:          "F4:7D:EF:12:34:56",
	}

	expected := "Living Room TV (192.168.1.20, F4:7D:EF:12:34:56)"
	if device.String() != expected {
		t.Errorf("Device.String() = %v, want %v", device.String(), expected)
	}
}

func TestDevice_HasKnownMAC(t *testing.T) {
	tests := []struct {
		name string
		mac  string
		want bool
	}{
		{"real address", "F4:7D:EF:12:34:56", true},
		{"sentinel", UnknownMAC, false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := (Device{MAC: tt.mac}).HasKnownMAC(); got != tt.want {
				t.Errorf("HasKnownMAC() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNormalizeMAC(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"lower case colons", "f4:7d:ef:12:34:56", "F4:7D:EF:12:34:56"},
		{"upper case colons", "AA:BB:CC:DD:EE:FF", "AA:BB:CC:DD:EE:FF"},
		{"dashes", "aa-bb-cc-dd-ee-ff", "AA:BB:CC:DD:EE:FF"},
		{"surrounding space", "  aa:bb:cc:dd:ee:ff ", "AA:BB:CC:DD:EE:FF"},
		{"garbage", "not-a-mac", UnknownMAC},
		{"empty", "", UnknownMAC},
		{"eui64 rejected", "00:00:00:00:fe:80:00:00", UnknownMAC},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeMAC(tt.input); got != tt.want {
				t.Errorf("NormalizeMAC(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestDevice_JSONFieldNames(t *testing.T) {
	data, err := json.Marshal(Device{FriendlyName: "TV", IP: "10.0.0.5", MAC: UnknownMAC})
	if err != nil {
		t.Fatalf("json.Marshal() error = %v", err)
	}

	expected := `{"friendlyName":"TV","ip":"10.0.0.5","mac":"00:00:00:00:00:00"}`
	if string(data) != expected {
		t.Errorf("json.Marshal() = %s, want %s", data, expected)
	}
}

func TestDevice_Matches(t *testing.T) {
	d := Device{FriendlyName: "Living Room", IP: "192.168.1.20", MAC: "64:1C:AE:12:34:56"}

	tests := []struct {
		query string
		want  bool
	}{
		{"192.168.1.20", true},
		{"living room", true},
		{"64-1c-ae-12-34-56", true},
		{"64:1C:AE:12:34:56", true},
		{"192.168.1.21", false},
		{"Kitchen", false},
		{"", false},
		{"00:00:00:00:00:00", false},
	}

	for _, tt := range tests {
		if got := d.Matches(tt.query); got != tt.want {
			t.Errorf("Matches(%q) = %v, want %v", tt.query, got, tt.want)
		}
	}
}

package ledgerline

import (
	"path/filepath"
	"testing"
)

func wideProfile(name string) Profile {
	return Profile{
		Name:   name,
		Format: FormatWide,
		Wide: &WideConversionConfig{
			DateColumn:     "Date",
			IncomeColumns:  []string{"Sales"},
			ExpenseColumns: []string{"Rent"},
		},
		Options: ReportOptions{CompanyName: "Acme Trading", DisplayCurrency: "EUR"},
	}
}

func TestProfileValidate(t *testing.T) {
	tests := []struct {
		name    string
		profile Profile
		wantErr bool
	}{
		{"valid wide", wideProfile("monthly"), false},
		{"valid long", Profile{
			Name: "bank", Format: FormatLong,
			Long: &LongMapping{DateColumn: "Date", AmountColumn: "Amount"},
		}, false},
		{"no name", Profile{Format: FormatWide, Wide: &WideConversionConfig{}}, true},
		{"wide without config", Profile{Name: "x", Format: FormatWide}, true},
		{"long without mapping", Profile{Name: "x", Format: FormatLong}, true},
		{"unknown format", Profile{Name: "x", Format: FormatUnknown}, true},
		{"invalid nested config", Profile{
			Name: "x", Format: FormatWide,
			Wide: &WideConversionConfig{DateColumn: "Date"},
		}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.profile.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestProfileStore(t *testing.T) {
	store := NewProfileStore()
	if err := store.Put(wideProfile("monthly")); err != nil {
		t.Fatal(err)
	}
	if err := store.Put(wideProfile("annual")); err != nil {
		t.Fatal(err)
	}
	if err := store.Put(Profile{Name: "broken"}); err == nil {
		t.Error("invalid profile stored")
	}

	names := store.Names()
	if len(names) != 2 || names[0] != "annual" || names[1] != "monthly" {
		t.Errorf("Names() = %v, want alphabetical", names)
	}
	if _, ok := store.Get("monthly"); !ok {
		t.Error("stored profile not found")
	}
	if !store.Delete("monthly") || store.Delete("monthly") {
		t.Error("Delete misreports existence")
	}
}

func TestSaveAndLoadProfiles(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profiles.yaml")

	store := NewProfileStore()
	if err := store.Put(wideProfile("monthly")); err != nil {
		t.Fatal(err)
	}
	if err := SaveProfiles(path, store); err != nil {
		t.Fatal(err)
	}

	loaded, err := LoadProfiles(path)
	if err != nil {
		t.Fatal(err)
	}
	p, ok := loaded.Get("monthly")
	if !ok {
		t.Fatal("saved profile missing after reload")
	}
	if p.Format != FormatWide || p.Wide == nil || p.Wide.DateColumn != "Date" {
		t.Errorf("reloaded profile = %+v", p)
	}
	if p.Options.CompanyName != "Acme Trading" || p.Options.DisplayCurrency != "EUR" {
		t.Errorf("reloaded options = %+v", p.Options)
	}
}

func TestLoadProfiles_MissingFileIsEmptyStore(t *testing.T) {
	store, err := LoadProfiles(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if len(store.Names()) != 0 {
		t.Errorf("Names() = %v, want empty", store.Names())
	}
}

package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"motohub/internal/modules/pricing"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestCitiesCmd(t *testing.T) {
	out, err := run(t, "cities")
	if err != nil {
		t.Fatalf("cities: %v\n%s", err, out)
	}
	for _, want := range []string{"SLUG", "bengaluru", "delhi", "Karnataka"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestQuoteOnRoadCmd_JSON(t *testing.T) {
	out, err := run(t, "quote", "on-road", "--price", "200000", "--cc", "350", "--mileage", "35", "--city", "delhi", "--json")
	if err != nil {
		t.Fatalf("quote on-road: %v\n%s", err, out)
	}
	var q pricing.OnRoadQuote
	if err := json.Unmarshal([]byte(out), &q); err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	if q.Charges.RTOInr != 20000 || q.Charges.InsuranceInr != 5200 {
		t.Errorf("charges = %+v", q.Charges)
	}
}

func TestQuoteOnRoadCmd_Text(t *testing.T) {
	out, err := run(t, "quote", "on-road", "--price", "200000", "--cc", "350", "--city", "delhi", "--name", "Hunter 350")
	if err != nil {
		t.Fatalf("quote on-road: %v", err)
	}
	for _, want := range []string{"Hunter 350", "RTO / road tax", "₹20,000", "On-road price"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestQuoteOnRoadCmd_MissingPrice(t *testing.T) {
	if _, err := run(t, "quote", "on-road", "--city", "delhi"); err == nil {
		t.Fatal("expected error without --price")
	}
}

func TestQuoteOwnershipCmd(t *testing.T) {
	out, err := run(t, "quote", "ownership", "--price", "150000", "--cc", "150", "--mileage", "45", "--down", "150", "--years", "3", "--json")
	if err != nil {
		t.Fatalf("quote ownership: %v\n%s", err, out)
	}
	var q pricing.OwnershipQuote
	if err := json.Unmarshal([]byte(out), &q); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if q.Assumptions.DownPaymentPct != 80 || q.Assumptions.Years != 3 {
		t.Errorf("assumptions = %+v", q.Assumptions)
	}
	if len(q.Assumptions.Overrides) != 1 || q.Assumptions.Overrides[0] != "downPaymentPct" {
		t.Errorf("overrides = %v; flag defaults must not count as overrides", q.Assumptions.Overrides)
	}
}

func TestEMICmd(t *testing.T) {
	out, err := run(t, "emi", "--principal", "100000", "--rate", "0", "--months", "12")
	if err != nil {
		t.Fatalf("emi: %v", err)
	}
	if !strings.Contains(out, "₹8,333") {
		t.Errorf("output:\n%s", out)
	}
	if _, err := run(t, "emi"); err == nil {
		t.Error("expected error without --principal")
	}
}

func TestProfilesValidateCmd(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cities.hcl")
	src := `
city "indore" {
  name             = "Indore"
  state            = "Madhya Pradesh"
  rto_pct          = 0.08
  insurance_pct    = 0.025
  fuel_price_per_l = 106.5
}
`
	if err := os.WriteFile(path, []byte(src), 0o600); err != nil {
		t.Fatal(err)
	}

	out, err := run(t, "--default-city", "indore", "profiles", "validate", path)
	if err != nil {
		t.Fatalf("validate: %v\n%s", err, out)
	}
	if !strings.Contains(out, "1 cities, default indore") {
		t.Errorf("output = %q", out)
	}

	out, err = run(t, "--profiles", path, "--default-city", "indore", "cities")
	if err != nil {
		t.Fatalf("cities with --profiles: %v", err)
	}
	if !strings.Contains(out, "indore") || strings.Contains(out, "bengaluru") {
		t.Errorf("profiles file not used:\n%s", out)
	}

	if _, err := run(t, "profiles", "validate", path); err == nil {
		t.Error("file without bengaluru should fail with the default fallback city")
	}
}

func TestMigrateCmd_RequiresDSN(t *testing.T) {
	t.Setenv("MOTOHUB_DB_DSN", "")
	if _, err := run(t, "migrate", "status"); err == nil || !strings.Contains(err.Error(), "MOTOHUB_DB_DSN") {
		t.Fatalf("err = %v", err)
	}
}

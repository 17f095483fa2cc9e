package core

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

func draft() TransferDraft {
	return TransferDraft{
		SrcAccountID: 1,
		DstAccountID: 2,
		SrcAmount:    "100.00",
		OccurredAt:   time.Date(2025, 3, 15, 14, 30, 0, 0, time.UTC),
	}
}

func TestBuildCreateRequestMinimal(t *testing.T) {
	req, err := draft().BuildCreateRequest()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	body, err := json.Marshal(req)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	s := string(body)
	if strings.Contains(s, "dst_amount") || strings.Contains(s, "fx_rate") {
		t.Fatalf("optional fields must be omitted entirely, got %s", s)
	}
	if !strings.Contains(s, `"src_amount":"100.00"`) {
		t.Fatalf("src_amount not verbatim: %s", s)
	}
	if !strings.Contains(s, `"occurred_at":"2025-03-15T14:30:00Z"`) {
		t.Fatalf("occurred_at not RFC3339 UTC: %s", s)
	}
}

func TestBuildCreateRequestFull(t *testing.T) {
	d := draft()
	d.FxRate = "0.92"
	if sugg, ok := SuggestDstAmount(d.SrcAmount, d.FxRate); ok {
		d.DstAmount = sugg
	}
	if d.DstAmount != "92.00" {
		t.Fatalf("suggestion = %q, want 92.00", d.DstAmount)
	}

	req, err := d.BuildCreateRequest()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.DstAmount != "92.00" || req.FxRate != "0.92" {
		t.Fatalf("optional fields not carried verbatim: %+v", req)
	}
	body, _ := json.Marshal(req)
	want := `{"src_account_id":1,"dst_account_id":2,"src_amount":"100.00","dst_amount":"92.00","fx_rate":"0.92","occurred_at":"2025-03-15T14:30:00Z"}`
	if string(body) != want {
		t.Fatalf("wire payload\n got %s\nwant %s", body, want)
	}
}

func TestBuildCreateRequestValidation(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*TransferDraft)
		field  string
		err    error
	}{
		{"missing src account", func(d *TransferDraft) { d.SrcAccountID = 0 }, "src_account_id", ErrMissingAccount},
		{"missing dst account", func(d *TransferDraft) { d.DstAccountID = 0 }, "dst_account_id", ErrMissingAccount},
		{"same account", func(d *TransferDraft) { d.DstAccountID = d.SrcAccountID }, "dst_account_id", ErrSameAccount},
		{"empty amount", func(d *TransferDraft) { d.SrcAmount = "" }, "src_amount", ErrInvalidAmount},
		{"zero amount", func(d *TransferDraft) { d.SrcAmount = "0" }, "src_amount", ErrInvalidAmount},
		{"garbage amount", func(d *TransferDraft) { d.SrcAmount = "abc" }, "src_amount", ErrInvalidAmount},
		{"missing instant", func(d *TransferDraft) { d.OccurredAt = time.Time{} }, "occurred_at", ErrMissingInstant},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := draft()
			tc.mutate(&d)
			_, err := d.BuildCreateRequest()
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected *ValidationError, got %v", err)
			}
			if verr.Field != tc.field || !errors.Is(err, tc.err) {
				t.Fatalf("got (%q, %v), want (%q, %v)", verr.Field, verr.Err, tc.field, tc.err)
			}
		})
	}
}

func strptr(s string) *string { return &s }

func record() TransferRecord {
	return TransferRecord{
		ID:           7,
		SrcAccountID: 1,
		DstAccountID: 2,
		SrcAmount:    "100.00",
		DstAmount:    "92.00",
		RateValue:    "0.920000",
		RateBase:     "EUR",
		RateQuote:    "USD",
		OccurredAt:   time.Date(2025, 3, 15, 14, 30, 0, 0, time.UTC),
	}
}

func TestRateDisplayPrecedence(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*TransferRecord)
		label  string
		value  string
	}{
		{"canonical only", func(r *TransferRecord) {}, "FX", "0.920000"},
		{"fx 2dp present", func(r *TransferRecord) { r.FxRate2dp = strptr("0.92") }, "FX", "0.92"},
		{"ref wins over fx", func(r *TransferRecord) {
			r.FxRate2dp = strptr("0.92")
			r.RefRate2dp = strptr("0.90")
		}, "FX (ref)", "0.90"},
		{"ref alone", func(r *TransferRecord) { r.RefRate2dp = strptr("0.90") }, "FX (ref)", "0.90"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := record()
			tc.mutate(&r)
			d := r.RateDisplay()
			if d.Label != tc.label || d.Value != tc.value {
				t.Fatalf("got (%q, %q), want (%q, %q)", d.Label, d.Value, tc.label, tc.value)
			}
			if d.Base != "EUR" || d.Quote != "USD" {
				t.Fatalf("currency pair must come from the canonical triple, got %s/%s", d.Base, d.Quote)
			}
			if want := tc.value + " (EUR/USD)"; d.String() != want {
				t.Fatalf("rate line = %q, want %q", d.String(), want)
			}
		})
	}
}

func TestFeeAndVetDisplay(t *testing.T) {
	r := record()
	if _, ok := r.FeeDisplay(); ok {
		t.Fatal("no fee line expected without fees_per_unit_2dp")
	}
	if _, ok := r.VetDisplay(); ok {
		t.Fatal("no VET line expected without vet_2dp")
	}

	r.FeesPerUnit = strptr("0.02")
	if s, ok := r.FeeDisplay(); !ok || s != "0.02" {
		t.Fatalf("fee line = (%q, %v)", s, ok)
	}
	r.FeesPct = strptr("2.17")
	if s, _ := r.FeeDisplay(); s != "0.02 (2.17%)" {
		t.Fatalf("fee line with pct = %q", s)
	}

	r.Vet2dp = strptr("0.94")
	if s, ok := r.VetDisplay(); !ok || s != "0.94" {
		t.Fatalf("vet line = (%q, %v)", s, ok)
	}
}

func TestTransferRecordDecodeOptionalAbsent(t *testing.T) {
	body := `{"id":7,"src_account_id":1,"dst_account_id":2,"src_amount":"100.00",` +
		`"dst_amount":"92.00","rate_value":"0.92","rate_base":"EUR","rate_quote":"USD",` +
		`"occurred_at":"2025-03-15T14:30:00Z","fx_rate_2dp":"0.92"}`
	var r TransferRecord
	if err := json.Unmarshal([]byte(body), &r); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if r.FxRate2dp == nil || *r.FxRate2dp != "0.92" {
		t.Fatalf("fx_rate_2dp = %v", r.FxRate2dp)
	}
	if r.RefRate2dp != nil || r.Vet2dp != nil || r.FeesPerUnit != nil || r.FeesPct != nil {
		t.Fatal("absent optional fields must decode as nil")
	}
	d := r.RateDisplay()
	if d.Label != "FX" || d.Value != "0.92" {
		t.Fatalf("display = %+v", d)
	}
}

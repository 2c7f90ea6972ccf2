package intake

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ExtractedFields mirrors the extractedFields object of the /process payload.
// Every slot is always present; nil means the service could not find it.
type ExtractedFields struct {
	PolicyNumber        *string `json:"policyNumber"`
	PolicyholderName    *string `json:"policyholderName"`
	EffectiveDates      *string `json:"effectiveDates"`
	IncidentDate        *string `json:"incidentDate"`
	IncidentTime        *string `json:"incidentTime"`
	IncidentLocation    *string `json:"incidentLocation"`
	IncidentDescription *string `json:"incidentDescription"`
	Claimant            *string `json:"claimant"`
	ThirdParties        *string `json:"thirdParties"`
	ContactDetails      *string `json:"contactDetails"`
	AssetType           *string `json:"assetType"`
	AssetID             *string `json:"assetId"`
	EstimatedDamage     *string `json:"estimatedDamage"`
	InitialEstimate     *string `json:"initialEstimate"`
	ClaimType           *string `json:"claimType"`
	Attachments         *string `json:"attachments"`
}

// ClaimResult is the normalized success payload returned by /process.
type ClaimResult struct {
	ExtractedFields  ExtractedFields `json:"extractedFields"`
	MissingFields    []string        `json:"missingFields"`
	RecommendedRoute string          `json:"recommendedRoute"`
	Reasoning        string          `json:"reasoning"`
}

// Field groups used by the fields view.
const (
	GroupPolicy   = "Policy Information"
	GroupIncident = "Incident Information"
	GroupParties  = "Involved Parties"
	GroupAsset    = "Asset & Cost Details"
)

// Slot is a single labelled extracted field.
type Slot struct {
	Key   string
	Label string
	Group string
	Value *string
}

// Display returns the slot value, or an em dash when absent or blank.
func (s Slot) Display() string {
	if s.Value == nil || strings.TrimSpace(*s.Value) == "" {
		return "—"
	}
	return *s.Value
}

// Present reports whether the slot carries a non-blank value.
func (s Slot) Present() bool {
	return s.Value != nil && strings.TrimSpace(*s.Value) != ""
}

// Slots returns all sixteen slots in display order.
func (f ExtractedFields) Slots() []Slot {
	return []Slot{
		{"policyNumber", "Policy Number", GroupPolicy, f.PolicyNumber},
		{"policyholderName", "Policyholder Name", GroupPolicy, f.PolicyholderName},
		{"effectiveDates", "Effective Dates", GroupPolicy, f.EffectiveDates},
		{"incidentDate", "Date", GroupIncident, f.IncidentDate},
		{"incidentTime", "Time", GroupIncident, f.IncidentTime},
		{"incidentLocation", "Location", GroupIncident, f.IncidentLocation},
		{"incidentDescription", "Description", GroupIncident, f.IncidentDescription},
		{"claimant", "Claimant", GroupParties, f.Claimant},
		{"thirdParties", "Third Parties", GroupParties, f.ThirdParties},
		{"contactDetails", "Contact Details", GroupParties, f.ContactDetails},
		{"assetType", "Asset Type", GroupAsset, f.AssetType},
		{"assetId", "Asset ID", GroupAsset, f.AssetID},
		{"estimatedDamage", "Estimated Damage", GroupAsset, f.EstimatedDamage},
		{"initialEstimate", "Initial Estimate", GroupAsset, f.InitialEstimate},
		{"claimType", "Claim Type", GroupAsset, f.ClaimType},
		{"attachments", "Attachments", GroupAsset, f.Attachments},
	}
}

// Lookup returns the slot with the given wire key.
func (f ExtractedFields) Lookup(key string) (Slot, bool) {
	for _, slot := range f.Slots() {
		if slot.Key == key {
			return slot, true
		}
	}
	return Slot{}, false
}

// Clone returns a deep copy so callers cannot mutate stored results.
func (r *ClaimResult) Clone() *ClaimResult {
	if r == nil {
		return nil
	}
	dup := *r
	if r.MissingFields != nil {
		dup.MissingFields = make([]string, len(r.MissingFields))
		copy(dup.MissingFields, r.MissingFields)
	}
	fields := r.ExtractedFields
	for _, p := range []**string{
		&fields.PolicyNumber, &fields.PolicyholderName, &fields.EffectiveDates,
		&fields.IncidentDate, &fields.IncidentTime, &fields.IncidentLocation,
		&fields.IncidentDescription, &fields.Claimant, &fields.ThirdParties,
		&fields.ContactDetails, &fields.AssetType, &fields.AssetID,
		&fields.EstimatedDamage, &fields.InitialEstimate, &fields.ClaimType,
		&fields.Attachments,
	} {
		if *p != nil {
			v := **p
			*p = &v
		}
	}
	dup.ExtractedFields = fields
	return &dup
}

// Pretty renders the result as indented JSON, the form used for the raw view and export.
func (r *ClaimResult) Pretty() (string, error) {
	if r == nil {
		return "", nil
	}
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode claim: %w", err)
	}
	return string(data), nil
}

var requiredKeys = []string{"extractedFields", "missingFields", "recommendedRoute", "reasoning"}

// DecodeClaim parses a /process success body. Anything that is not the
// documented claim shape is rejected rather than partially filled in.
func DecodeClaim(body []byte) (*ClaimResult, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(body, &top); err != nil {
		return nil, &DecodeError{Detail: "body is not a JSON object", Err: err}
	}
	for _, key := range requiredKeys {
		raw, ok := top[key]
		if !ok || isNull(raw) {
			return nil, &DecodeError{Detail: fmt.Sprintf("missing %q", key)}
		}
	}

	var slots map[string]*string
	if err := json.Unmarshal(top["extractedFields"], &slots); err != nil {
		return nil, &DecodeError{Detail: "extractedFields must map names to strings or null", Err: err}
	}

	var result ClaimResult
	for key, dst := range result.ExtractedFields.targets() {
		if v, ok := slots[key]; ok {
			*dst = v
		}
	}

	var missing []*string
	if err := json.Unmarshal(top["missingFields"], &missing); err != nil {
		return nil, &DecodeError{Detail: "missingFields must be an array of strings", Err: err}
	}
	result.MissingFields = make([]string, 0, len(missing))
	for i, name := range missing {
		if name == nil {
			return nil, &DecodeError{Detail: fmt.Sprintf("missingFields[%d] is null", i)}
		}
		result.MissingFields = append(result.MissingFields, *name)
	}
	if err := json.Unmarshal(top["recommendedRoute"], &result.RecommendedRoute); err != nil {
		return nil, &DecodeError{Detail: "recommendedRoute must be a string", Err: err}
	}
	if err := json.Unmarshal(top["reasoning"], &result.Reasoning); err != nil {
		return nil, &DecodeError{Detail: "reasoning must be a string", Err: err}
	}
	return &result, nil
}

// targets maps each wire key, matched exactly, to its field.
func (f *ExtractedFields) targets() map[string]**string {
	return map[string]**string{
		"policyNumber":        &f.PolicyNumber,
		"policyholderName":    &f.PolicyholderName,
		"effectiveDates":      &f.EffectiveDates,
		"incidentDate":        &f.IncidentDate,
		"incidentTime":        &f.IncidentTime,
		"incidentLocation":    &f.IncidentLocation,
		"incidentDescription": &f.IncidentDescription,
		"claimant":            &f.Claimant,
		"thirdParties":        &f.ThirdParties,
		"contactDetails":      &f.ContactDetails,
		"assetType":           &f.AssetType,
		"assetId":             &f.AssetID,
		"estimatedDamage":     &f.EstimatedDamage,
		"initialEstimate":     &f.InitialEstimate,
		"claimType":           &f.ClaimType,
		"attachments":         &f.Attachments,
	}
}

func isNull(raw json.RawMessage) bool {
	return strings.TrimSpace(string(raw)) == "null"
}

package aggregator

import (
	"fmt"
	"sort"
	"strings"

	"redflag-aggregator/internal/types"
)

// requiredFields are the red-flag contract fields that must be present and
// non-null. Everything else is retained as opaque extension data.
var requiredFields = []string{"module", "severity", "title", "detail", "risk_category"}

var namedFields = map[string]bool{
	"module":        true,
	"severity":      true,
	"title":         true,
	"detail":        true,
	"risk_category": true,
	"metric":        true,
	"value":         true,
	"threshold":     true,
	"period":        true,
}

// ValidateFlag coerces a raw record into a typed RedFlag or fails with a
// ValidationError naming the violated rule. A missing module field is
// back-filled from moduleKey before validation; that is a defaulting step,
// not an error.
func ValidateFlag(raw map[string]any, moduleKey string) (types.RedFlag, error) {
	if raw == nil {
		return types.RedFlag{}, &ValidationError{Reason: "red flag must be an object"}
	}

	if raw["module"] == nil && moduleKey != "" {
		copied := make(map[string]any, len(raw)+1)
		for k, v := range raw {
			copied[k] = v
		}
		copied["module"] = moduleKey
		raw = copied
	}

	// Collect every missing field, not just the first.
	var missing []string
	for _, f := range requiredFields {
		if v, ok := raw[f]; !ok || v == nil {
			missing = append(missing, f)
		}
	}
	if len(missing) > 0 {
		return types.RedFlag{}, &ValidationError{
			Reason: fmt.Sprintf("missing required red-flag fields: [%s]", strings.Join(missing, ", ")),
		}
	}

	sev, err := types.ParseSeverity(asString(raw["severity"]))
	if err != nil {
		return types.RedFlag{}, &ValidationError{Reason: err.Error()}
	}

	cat, err := types.ParseRiskCategory(asString(raw["risk_category"]))
	if err != nil {
		return types.RedFlag{}, &ValidationError{Reason: err.Error()}
	}

	flag := types.RedFlag{
		Module:       asString(raw["module"]),
		Severity:     sev,
		Title:        asString(raw["title"]),
		Detail:       asString(raw["detail"]),
		RiskCategory: cat,
		Metric:       optString(raw["metric"]),
		Value:        raw["value"],
		Threshold:    raw["threshold"],
		Period:       optString(raw["period"]),
	}

	for k, v := range raw {
		if !namedFields[k] {
			if flag.Extra == nil {
				flag.Extra = make(map[string]any)
			}
			flag.Extra[k] = v
		}
	}

	return flag, nil
}

// validateRequest checks the envelope and coerces every raw flag record,
// module by module. One invalid flag fails the whole request: the composite
// score is only correct over a fully-typed flag set, and silently dropping
// bad flags would understate risk.
func validateRequest(req types.AggregationRequest) ([]types.RedFlag, error) {
	if req.CompanyID == "" || req.ModuleRedFlags == nil {
		return nil, &AggregationError{
			Err: &StructuralError{Reason: "payload missing required keys: company_id and module_red_flags"},
		}
	}

	// Stable module order so errors and logs are reproducible.
	keys := make([]string, 0, len(req.ModuleRedFlags))
	for k := range req.ModuleRedFlags {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var validated []types.RedFlag
	for _, moduleKey := range keys {
		rawList := req.ModuleRedFlags[moduleKey]
		if rawList == nil {
			continue
		}

		records, err := asRecordList(rawList)
		if err != nil {
			return nil, &AggregationError{
				ModuleKey: moduleKey,
				Err:       &StructuralError{Reason: fmt.Sprintf("flags for module %s must be a list", moduleKey)},
			}
		}

		for _, raw := range records {
			flag, err := ValidateFlag(raw, moduleKey)
			if err != nil {
				return nil, &AggregationError{ModuleKey: moduleKey, Err: err}
			}
			validated = append(validated, flag)
		}
	}

	return validated, nil
}

// asRecordList accepts the list shapes a module value can legitimately arrive
// in: []any from JSON decoding, or []map[string]any from in-process callers.
// Non-object elements pass through as nil and are rejected per-flag by
// ValidateFlag, which keeps the structural/validation split clean.
func asRecordList(v any) ([]map[string]any, error) {
	switch list := v.(type) {
	case []map[string]any:
		return list, nil
	case []any:
		out := make([]map[string]any, len(list))
		for i, item := range list {
			rec, _ := item.(map[string]any)
			out[i] = rec
		}
		return out, nil
	}
	return nil, fmt.Errorf("not a list")
}

func asString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

func optString(v any) string {
	if v == nil {
		return ""
	}
	return asString(v)
}

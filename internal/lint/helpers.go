package lint

import (
	"fmt"
	"strconv"

	"github.com/AreteDriver/agent-audit/internal/model"
)

// rawString probes a step's raw params for a string-ish value; absent or nil
// keys resolve to "".
func rawString(step model.Step, key string) string {
	v, ok := step.RawParams[key]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}

// rawStringList probes a step's raw params for a list of strings.
func rawStringList(step model.Step, key string) []string {
	items, ok := step.RawParams[key].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, fmt.Sprintf("%v", item))
	}
	return out
}

// commaInt renders an integer with thousands separators ("30,000").
func commaInt(n int) string {
	s := strconv.Itoa(n)
	neg := false
	if len(s) > 0 && s[0] == '-' {
		neg = true
		s = s[1:]
	}
	var out []byte
	for i, digit := range []byte(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, digit)
	}
	if neg {
		return "-" + string(out)
	}
	return string(out)
}

// resolveLLMTokens is the inline fallback chain used by budget and
// resilience rules for LLM steps: declared, else role archetype, else the
// LLM default.
func resolveLLMTokens(step model.Step) int {
	if step.EstimatedTokens != nil {
		return *step.EstimatedTokens
	}
	if step.Role != "" {
		if tokens, ok := model.RoleTokenDefaults[step.Role]; ok {
			return tokens
		}
	}
	return model.DefaultLLMTokens
}

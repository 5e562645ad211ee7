// Package logging wraps log/slog handlers with caller-configured drop rules,
// so noisy third-party messages can be suppressed without touching a shared
// global logger.
package logging

import (
	"context"
	"log/slog"
	"strings"
)

// Rule decides whether a record should be dropped.
type Rule func(r slog.Record, attrs []slog.Attr) bool

// DropMessageContaining drops records whose message contains substr.
func DropMessageContaining(substr string) Rule {
	return func(r slog.Record, _ []slog.Attr) bool {
		return substr != "" && strings.Contains(r.Message, substr)
	}
}

// DropAttr drops records carrying key=value, either on the record itself or
// on the logger it came from (logger.With).
func DropAttr(key, value string) Rule {
	return func(r slog.Record, attrs []slog.Attr) bool {
		for _, a := range attrs {
			if a.Key == key && a.Value.String() == value {
				return true
			}
		}
		found := false
		r.Attrs(func(a slog.Attr) bool {
			if a.Key == key && a.Value.String() == value {
				found = true
				return false
			}
			return true
		})
		return found
	}
}

// DropBelow drops records of component below level.
func DropBelow(component string, level slog.Level) Rule {
	componentRule := DropAttr("component", component)
	return func(r slog.Record, attrs []slog.Attr) bool {
		return r.Level < level && componentRule(r, attrs)
	}
}

// FilterHandler forwards records to next unless a rule drops them.
type FilterHandler struct {
	next  slog.Handler
	rules []Rule
	attrs []slog.Attr
}

// NewFilterHandler returns a handler that applies rules before next.
func NewFilterHandler(next slog.Handler, rules ...Rule) *FilterHandler {
	return &FilterHandler{next: next, rules: rules}
}

// RulesFromPatterns turns a comma-separated list of substrings into rules.
func RulesFromPatterns(patterns string) []Rule {
	var rules []Rule
	for _, p := range strings.Split(patterns, ",") {
		if p = strings.TrimSpace(p); p != "" {
			rules = append(rules, DropMessageContaining(p))
		}
	}
	return rules
}

func (h *FilterHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h *FilterHandler) Handle(ctx context.Context, r slog.Record) error {
	for _, rule := range h.rules {
		if rule(r, h.attrs) {
			return nil
		}
	}
	return h.next.Handle(ctx, r)
}

func (h *FilterHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	merged = append(merged, h.attrs...)
	merged = append(merged, attrs...)
	return &FilterHandler{next: h.next.WithAttrs(attrs), rules: h.rules, attrs: merged}
}

func (h *FilterHandler) WithGroup(name string) slog.Handler {
	return &FilterHandler{next: h.next.WithGroup(name), rules: h.rules, attrs: h.attrs}
}

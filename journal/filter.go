package journal

import (
	"cmp"
	"slices"

	jsoniter "github.com/json-iterator/go"
)

/***** Filter *****/

// Filter selects events from the Journal. An empty Filter matches every event,
// otherwise an event must match at least one FilterItem.
type Filter struct {
	items []FilterItem
}

func (f Filter) Items() []FilterItem {
	return f.items
}

// Matches reports whether the event is selected by the filter.
func (f Filter) Matches(event StorableEvent) bool {
	if len(f.items) == 0 {
		return true
	}

	return slices.ContainsFunc(f.items, func(item FilterItem) bool {
		return item.matches(event)
	})
}

/***** FilterItem *****/

// FilterItem matches events by type AND by payload predicates.
type FilterItem struct {
	eventTypes             []string
	predicates             []FilterPredicate
	allPredicatesMustMatch bool
}

func (fi FilterItem) EventTypes() []string {
	return fi.eventTypes
}

func (fi FilterItem) Predicates() []FilterPredicate {
	return fi.predicates
}

func (fi FilterItem) AllPredicatesMustMatch() bool {
	return fi.allPredicatesMustMatch
}

func (fi FilterItem) matches(event StorableEvent) bool {
	if len(fi.eventTypes) > 0 && !slices.Contains(fi.eventTypes, event.EventType) {
		return false
	}

	if len(fi.predicates) == 0 {
		return true
	}

	matching := func(p FilterPredicate) bool {
		return jsoniter.Get(event.PayloadJSON, p.key).ToString() == p.val
	}

	if fi.allPredicatesMustMatch {
		return !slices.ContainsFunc(fi.predicates, func(p FilterPredicate) bool { return !matching(p) })
	}

	return slices.ContainsFunc(fi.predicates, matching)
}

/***** FilterPredicate *****/

// FilterPredicate compares a top-level payload field with a value.
type FilterPredicate struct {
	key string
	val string
}

// P creates a FilterPredicate.
func P(key string, val string) FilterPredicate {
	return FilterPredicate{key: key, val: val}
}

func (fp FilterPredicate) Key() string {
	return fp.key
}

func (fp FilterPredicate) Val() string {
	return fp.val
}

/***** FilterBuilder *****/

// FilterBuilder only allows "useful" filter combinations:
//
//   - empty filter
//   - (eventType OR eventType...)
//   - (predicate OR predicate...) / (predicate AND predicate...)
//   - ((eventType OR eventType...) AND (predicate OR predicate...))
//   - ((eventType OR eventType...) AND (predicate AND predicate...))
//   - any of the above OR any of the above... -> multiple FilterItem(s)
type FilterBuilder interface {
	// Matching starts a new FilterItem.
	Matching() EmptyFilterItemBuilder

	// MatchingAnyEvent directly creates an empty Filter.
	MatchingAnyEvent() Filter
}

type EmptyFilterItemBuilder interface {
	AnyEventTypeOf(eventType string, eventTypes ...string) FilterItemBuilderLackingPredicates
	AnyPredicateOf(predicate FilterPredicate, predicates ...FilterPredicate) FilterItemBuilderLackingEventTypes
	AllPredicatesOf(predicate FilterPredicate, predicates ...FilterPredicate) FilterItemBuilderLackingEventTypes
}

type FilterItemBuilderLackingPredicates interface {
	AndAnyPredicateOf(predicate FilterPredicate, predicates ...FilterPredicate) CompletedFilterItemBuilder
	AndAllPredicatesOf(predicate FilterPredicate, predicates ...FilterPredicate) CompletedFilterItemBuilder
	CompletedFilterItemBuilder
}

type FilterItemBuilderLackingEventTypes interface {
	AndAnyEventTypeOf(eventType string, eventTypes ...string) CompletedFilterItemBuilder
	CompletedFilterItemBuilder
}

type CompletedFilterItemBuilder interface {
	// OrMatching finalizes the current FilterItem and starts a new one.
	OrMatching() EmptyFilterItemBuilder

	// Finalize returns the Filter.
	Finalize() Filter
}

// filterBuilder implements all the builder interfaces. It is passed by value, so every
// step works on its own copy.
type filterBuilder struct {
	filter  Filter
	current FilterItem
}

// BuildEventFilter creates a FilterBuilder which must eventually be finalized with Finalize() or MatchingAnyEvent().
func BuildEventFilter() FilterBuilder {
	return filterBuilder{}
}

func (fb filterBuilder) Matching() EmptyFilterItemBuilder {
	fb.current = FilterItem{}

	return fb
}

// AnyEventTypeOf adds event types, dropping empty and duplicate ones.
func (fb filterBuilder) AnyEventTypeOf(eventType string, eventTypes ...string) FilterItemBuilderLackingPredicates {
	fb.current.eventTypes = sanitize(
		append(slices.Clone(fb.current.eventTypes), append([]string{eventType}, eventTypes...)...),
		func(e string) bool { return e == "" },
		cmp.Compare[string],
	)

	return fb
}

func (fb filterBuilder) AndAnyEventTypeOf(eventType string, eventTypes ...string) CompletedFilterItemBuilder {
	return fb.AnyEventTypeOf(eventType, eventTypes...)
}

// AnyPredicateOf adds predicates of which at least one must match, dropping partial and duplicate ones.
func (fb filterBuilder) AnyPredicateOf(predicate FilterPredicate, predicates ...FilterPredicate) FilterItemBuilderLackingEventTypes {
	fb.current.predicates = sanitizePredicates(fb.current.predicates, predicate, predicates...)

	return fb
}

func (fb filterBuilder) AndAnyPredicateOf(predicate FilterPredicate, predicates ...FilterPredicate) CompletedFilterItemBuilder {
	return fb.AnyPredicateOf(predicate, predicates...)
}

// AllPredicatesOf adds predicates which all must match.
func (fb filterBuilder) AllPredicatesOf(predicate FilterPredicate, predicates ...FilterPredicate) FilterItemBuilderLackingEventTypes {
	fb.current.allPredicatesMustMatch = true
	fb.current.predicates = sanitizePredicates(fb.current.predicates, predicate, predicates...)

	return fb
}

func (fb filterBuilder) AndAllPredicatesOf(predicate FilterPredicate, predicates ...FilterPredicate) CompletedFilterItemBuilder {
	return fb.AllPredicatesOf(predicate, predicates...)
}

func (fb filterBuilder) OrMatching() EmptyFilterItemBuilder {
	fb.filter.items = append(slices.Clone(fb.filter.items), fb.current)
	fb.current = FilterItem{}

	return fb
}

func (fb filterBuilder) MatchingAnyEvent() Filter {
	return fb.filter
}

func (fb filterBuilder) Finalize() Filter {
	fb.filter.items = append(slices.Clone(fb.filter.items), fb.current)

	return fb.filter
}

func sanitizePredicates(existing []FilterPredicate, predicate FilterPredicate, predicates ...FilterPredicate) []FilterPredicate {
	return sanitize(
		append(slices.Clone(existing), append([]FilterPredicate{predicate}, predicates...)...),
		func(p FilterPredicate) bool { return p.key == "" || p.val == "" },
		func(a, b FilterPredicate) int {
			return cmp.Or(cmp.Compare(a.key, b.key), cmp.Compare(a.val, b.val))
		},
	)
}

func sanitize[T comparable](values []T, empty func(T) bool, compare func(a, b T) int) []T {
	values = slices.DeleteFunc(values, empty)
	slices.SortFunc(values, compare)

	return slices.Clip(slices.Compact(values))
}

package digest

import (
	"slices"
)

// Builder assembles a Section tree. Each builder owns exactly one section;
// child scopes are opened with Section and attached to their parent when
// the scope ends.
type Builder struct {
	section *Section
}

func NewBuilder() *Builder {
	return &Builder{section: &Section{}}
}

// Add appends items to the current section in the given order.
func (b *Builder) Add(items ...Item) {
	b.section.Items = append(b.section.Items, items...)
}

// Section opens a labelled child scope and runs fill against it. The child
// is attached when fill returns, on success and on error alike, unless it
// ended up empty. The error from fill is returned unchanged.
func (b *Builder) Section(label string, fill func(*Builder) error) error {
	child := &Builder{section: &Section{Label: label}}
	defer func() {
		if !child.section.Empty() {
			b.section.Children = append(b.section.Children, child.section)
		}
	}()
	return fill(child)
}

// addChild adds a labelled child holding items, unless items is empty.
func (b *Builder) addChild(label string, items []Item) {
	if len(items) == 0 {
		return
	}
	b.section.Children = append(b.section.Children, &Section{Label: label, Items: items})
}

// Build returns the section owned by b.
func (b *Builder) Build() *Section {
	return b.section
}

// FeedGroup is the items of one journal in source order.
type FeedGroup struct {
	Label string
	Items []Item
}

// AddFeedGroups adds one section per journal, in the order given. Journals
// with no items are left out.
func AddFeedGroups(b *Builder, groups []FeedGroup) {
	for _, group := range groups {
		b.addChild(group.Label, Order(group.Items))
	}
}

// AddPartitioned adds one section per partition in declared order, followed
// by a catch-all section for items no partition claimed. Without partitions
// the items are added to b directly.
func AddPartitioned(b *Builder, items []Item, partitions []Partition) {
	if len(partitions) == 0 {
		AddFlat(b, items)
		return
	}

	buckets := make([][]Item, len(partitions))
	var rest []Item
	for _, item := range items {
		if i, ok := Classify(item, partitions); ok {
			buckets[i] = append(buckets[i], item)
		} else {
			rest = append(rest, item)
		}
	}

	for i, partition := range partitions {
		b.addChild(partition.Label, OrderByTitle(buckets[i]))
	}
	b.addChild(OtherLabel, OrderByTitle(rest))
}

// AddBySeries adds one section per series key in lexical order.
func AddBySeries(b *Builder, items []Item) {
	bySeries := make(map[string][]Item)
	for _, item := range items {
		key := SeriesKey(item.Series)
		bySeries[key] = append(bySeries[key], item)
	}

	keys := make([]string, 0, len(bySeries))
	for key := range bySeries {
		keys = append(keys, key)
	}
	slices.Sort(keys)

	for _, key := range keys {
		b.addChild(key, OrderByTitle(bySeries[key]))
	}
}

// AddFlat adds items to b in title order without sub-sections.
func AddFlat(b *Builder, items []Item) {
	b.Add(OrderByTitle(items)...)
}

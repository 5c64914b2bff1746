package ast

import (
	"strings"

	"github.com/speedata/xpathast/either"
	"github.com/speedata/xpathast/optional"
)

// AnyKindTest is node().
type AnyKindTest struct{}

func (AnyKindTest) Equals(n Node) bool {
	_, ok := n.(AnyKindTest)
	return ok
}

func (AnyKindTest) String() string            { return "node()" }
func (AnyKindTest) text(dst *strings.Builder) { dst.WriteString("node()") }
func (AnyKindTest) walk(Visitor)              {}
func (AnyKindTest) nodeTest()                 {}
func (AnyKindTest) itemType()                 {}
func (AnyKindTest) kindTest()                 {}

// TextTest is text().
type TextTest struct{}

func (TextTest) Equals(n Node) bool {
	_, ok := n.(TextTest)
	return ok
}

func (TextTest) String() string            { return "text()" }
func (TextTest) text(dst *strings.Builder) { dst.WriteString("text()") }
func (TextTest) walk(Visitor)              {}
func (TextTest) nodeTest()                 {}
func (TextTest) itemType()                 {}
func (TextTest) kindTest()                 {}

// CommentTest is comment().
type CommentTest struct{}

func (CommentTest) Equals(n Node) bool {
	_, ok := n.(CommentTest)
	return ok
}

func (CommentTest) String() string            { return "comment()" }
func (CommentTest) text(dst *strings.Builder) { dst.WriteString("comment()") }
func (CommentTest) walk(Visitor)              {}
func (CommentTest) nodeTest()                 {}
func (CommentTest) itemType()                 {}
func (CommentTest) kindTest()                 {}

// DocumentContent is the optional argument of document-node().
type DocumentContent = either.Either[*ElementTest, *SchemaElementTest]

// DocumentTest is document-node(), optionally restricted by an element or
// schema-element test.
type DocumentTest struct {
	content optional.Value[DocumentContent]
}

func NewDocumentTest(content optional.Value[DocumentContent]) *DocumentTest {
	return &DocumentTest{content: content}
}

// Content returns the test on the document element, if any.
func (t *DocumentTest) Content() (DocumentContent, bool) { return t.content.Get() }

func (t *DocumentTest) Equals(n Node) bool {
	o, ok := n.(*DocumentTest)
	return ok && optional.Equal(t.content, o.content, func(a, b DocumentContent) bool {
		return either.Equal(a, b, equalNodes[*ElementTest], equalNodes[*SchemaElementTest])
	})
}

func (t *DocumentTest) String() string { return ToString(t) }

func (t *DocumentTest) text(dst *strings.Builder) {
	dst.WriteString("document-node(")
	if c, ok := t.content.Get(); ok {
		contentNode(c).text(dst)
	}
	dst.WriteByte(')')
}

func (t *DocumentTest) walk(v Visitor) {
	if c, ok := t.content.Get(); ok {
		Walk(v, contentNode(c))
	}
}

func contentNode(c DocumentContent) Node {
	return either.Fold(c,
		func(e *ElementTest) Node { return e },
		func(s *SchemaElementTest) Node { return s })
}

func (*DocumentTest) nodeTest() {}
func (*DocumentTest) itemType() {}
func (*DocumentTest) kindTest() {}

// ElementTest is element(name?, type??). Nillable reports a "?" after the
// type name.
type ElementTest struct {
	name     optional.Value[QNameW]
	typeName optional.Value[QNameW]
	nillable bool
}

func NewElementTest(name, typeName optional.Value[QNameW], nillable bool) *ElementTest {
	return &ElementTest{name: name, typeName: typeName, nillable: nillable}
}

func (t *ElementTest) Name() (QNameW, bool)     { return t.name.Get() }
func (t *ElementTest) TypeName() (QNameW, bool) { return t.typeName.Get() }
func (t *ElementTest) Nillable() bool           { return t.nillable }

func (t *ElementTest) Equals(n Node) bool {
	o, ok := n.(*ElementTest)
	return ok && o.nillable == t.nillable &&
		optional.Equal(t.name, o.name, equalNames) &&
		optional.Equal(t.typeName, o.typeName, equalNames)
}

func (t *ElementTest) String() string { return ToString(t) }

func (t *ElementTest) text(dst *strings.Builder) {
	dst.WriteString("element(")
	nameAndTypeText(dst, t.name, t.typeName)
	if t.nillable {
		dst.WriteByte('?')
	}
	dst.WriteByte(')')
}

func nameAndTypeText(dst *strings.Builder, name, typeName optional.Value[QNameW]) {
	if n, ok := name.Get(); ok {
		dst.WriteString(n.String())
	}
	if tn, ok := typeName.Get(); ok {
		dst.WriteString(", ")
		dst.WriteString(tn.String())
	}
}

func (t *ElementTest) walk(Visitor) {}
func (*ElementTest) nodeTest()      {}
func (*ElementTest) itemType()      {}
func (*ElementTest) kindTest()      {}

// AttributeTest is attribute(name?, type?).
type AttributeTest struct {
	name     optional.Value[QNameW]
	typeName optional.Value[QNameW]
}

func NewAttributeTest(name, typeName optional.Value[QNameW]) *AttributeTest {
	return &AttributeTest{name: name, typeName: typeName}
}

func (t *AttributeTest) Name() (QNameW, bool)     { return t.name.Get() }
func (t *AttributeTest) TypeName() (QNameW, bool) { return t.typeName.Get() }

func (t *AttributeTest) Equals(n Node) bool {
	o, ok := n.(*AttributeTest)
	return ok && optional.Equal(t.name, o.name, equalNames) &&
		optional.Equal(t.typeName, o.typeName, equalNames)
}

func (t *AttributeTest) String() string { return ToString(t) }

func (t *AttributeTest) text(dst *strings.Builder) {
	dst.WriteString("attribute(")
	nameAndTypeText(dst, t.name, t.typeName)
	dst.WriteByte(')')
}

func (t *AttributeTest) walk(Visitor) {}
func (*AttributeTest) nodeTest()      {}
func (*AttributeTest) itemType()      {}
func (*AttributeTest) kindTest()      {}

// PITest is processing-instruction(target?).
type PITest struct {
	name optional.Value[string]
}

func NewPITest(name optional.Value[string]) *PITest {
	return &PITest{name: name}
}

func (t *PITest) Name() (string, bool) { return t.name.Get() }

func (t *PITest) Equals(n Node) bool {
	o, ok := n.(*PITest)
	return ok && optional.Equal(t.name, o.name, func(a, b string) bool { return a == b })
}

func (t *PITest) String() string { return ToString(t) }

func (t *PITest) text(dst *strings.Builder) {
	dst.WriteString("processing-instruction(")
	if n, ok := t.name.Get(); ok {
		dst.WriteString(n)
	}
	dst.WriteByte(')')
}

func (t *PITest) walk(Visitor) {}
func (*PITest) nodeTest()      {}
func (*PITest) itemType()      {}
func (*PITest) kindTest()      {}

// SchemaElementTest is schema-element(name).
type SchemaElementTest struct {
	name QNameW
}

func NewSchemaElementTest(name QNameW) *SchemaElementTest {
	return &SchemaElementTest{name: name}
}

func (t *SchemaElementTest) Name() QNameW { return t.name }

func (t *SchemaElementTest) Equals(n Node) bool {
	o, ok := n.(*SchemaElementTest)
	return ok && o.name.Equals(t.name)
}

func (t *SchemaElementTest) String() string { return ToString(t) }

func (t *SchemaElementTest) text(dst *strings.Builder) {
	dst.WriteString("schema-element(" + t.name.String() + ")")
}

func (t *SchemaElementTest) walk(Visitor) {}
func (*SchemaElementTest) nodeTest()      {}
func (*SchemaElementTest) itemType()      {}
func (*SchemaElementTest) kindTest()      {}

// SchemaAttributeTest is schema-attribute(name).
type SchemaAttributeTest struct {
	name QNameW
}

func NewSchemaAttributeTest(name QNameW) *SchemaAttributeTest {
	return &SchemaAttributeTest{name: name}
}

func (t *SchemaAttributeTest) Name() QNameW { return t.name }

func (t *SchemaAttributeTest) Equals(n Node) bool {
	o, ok := n.(*SchemaAttributeTest)
	return ok && o.name.Equals(t.name)
}

func (t *SchemaAttributeTest) String() string { return ToString(t) }

func (t *SchemaAttributeTest) text(dst *strings.Builder) {
	dst.WriteString("schema-attribute(" + t.name.String() + ")")
}

func (t *SchemaAttributeTest) walk(Visitor) {}
func (*SchemaAttributeTest) nodeTest()      {}
func (*SchemaAttributeTest) itemType()      {}
func (*SchemaAttributeTest) kindTest()      {}

// AtomicType names an atomic type such as xs:string.
type AtomicType struct {
	name QNameW
}

func NewAtomicType(name QNameW) *AtomicType {
	return &AtomicType{name: name}
}

func (t *AtomicType) Name() QNameW { return t.name }

func (t *AtomicType) Equals(n Node) bool {
	o, ok := n.(*AtomicType)
	return ok && o.name.Equals(t.name)
}

func (t *AtomicType) String() string            { return ToString(t) }
func (t *AtomicType) text(dst *strings.Builder) { dst.WriteString(t.name.String()) }
func (t *AtomicType) walk(Visitor)              {}
func (*AtomicType) itemType()                   {}

// ItemTypeItem is item().
type ItemTypeItem struct{}

func (ItemTypeItem) Equals(n Node) bool {
	_, ok := n.(ItemTypeItem)
	return ok
}

func (ItemTypeItem) String() string            { return "item()" }
func (ItemTypeItem) text(dst *strings.Builder) { dst.WriteString("item()") }
func (ItemTypeItem) walk(Visitor)              {}
func (ItemTypeItem) itemType()                 {}

// SequenceType is an item type with an optional occurrence indicator, or
// empty-sequence().
type SequenceType struct {
	item       optional.Value[ItemType]
	occurrence optional.Value[OccurrenceIndicator]
}

// EmptySequence is empty-sequence().
var EmptySequence = &SequenceType{}

func NewSequenceType(item ItemType, occurrence optional.Value[OccurrenceIndicator]) *SequenceType {
	return &SequenceType{item: optional.Some(item), occurrence: occurrence}
}

// ItemType returns the item type. It is absent only for EmptySequence.
func (t *SequenceType) ItemType() (ItemType, bool) { return t.item.Get() }

func (t *SequenceType) Occurrence() (OccurrenceIndicator, bool) { return t.occurrence.Get() }

func (t *SequenceType) Equals(n Node) bool {
	o, ok := n.(*SequenceType)
	return ok && optional.Equal(t.item, o.item, equalNodes[ItemType]) &&
		optional.Equal(t.occurrence, o.occurrence, func(a, b OccurrenceIndicator) bool { return a == b })
}

func (t *SequenceType) String() string { return ToString(t) }

func (t *SequenceType) text(dst *strings.Builder) {
	item, ok := t.item.Get()
	if !ok {
		dst.WriteString("empty-sequence()")
		return
	}
	item.text(dst)
	if occ, ok := t.occurrence.Get(); ok {
		dst.WriteString(occ.Syntax())
	}
}

func (t *SequenceType) walk(v Visitor) {
	if item, ok := t.item.Get(); ok {
		Walk(v, item)
	}
}

// SingleType is an atomic type, optionally followed by "?" to allow the
// empty sequence.
type SingleType struct {
	atomic     *AtomicType
	allowEmpty bool
}

func NewSingleType(atomic *AtomicType, allowEmpty bool) *SingleType {
	return &SingleType{atomic: atomic, allowEmpty: allowEmpty}
}

func (t *SingleType) AtomicType() *AtomicType { return t.atomic }
func (t *SingleType) AllowEmpty() bool        { return t.allowEmpty }

func (t *SingleType) Equals(n Node) bool {
	o, ok := n.(*SingleType)
	return ok && o.allowEmpty == t.allowEmpty && Equal(t.atomic, o.atomic)
}

func (t *SingleType) String() string { return ToString(t) }

func (t *SingleType) text(dst *strings.Builder) {
	t.atomic.text(dst)
	if t.allowEmpty {
		dst.WriteByte('?')
	}
}

func (t *SingleType) walk(v Visitor) { Walk(v, t.atomic) }

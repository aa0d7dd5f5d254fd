package record

import (
	"errors"
	"reflect"
	"slices"
	"strings"
	"testing"
)

// ============================================================================
// Test records
// ============================================================================

type text struct {
	Text string
}

var textSchema = NewSchema("text",
	Value("text", func(t text) string { return t.Text }, func(t *text, v string) { t.Text = v }),
)

func (t text) TypeName() string { return textSchema.Name() }
func (t text) Fields() []Field  { return textSchema.Fields(t) }
func (t text) Replace(changes map[string]any) (Record, error) {
	return textSchema.Replace(t, changes)
}

type textPage struct {
	Index    int
	Contents *text
}

var textPageSchema = NewSchema("textPage",
	Value("index", func(p textPage) int { return p.Index }, func(p *textPage, v int) { p.Index = v }),
	Nested("contents", func(p textPage) *text { return p.Contents }, func(p *textPage, v *text) { p.Contents = v }),
)

func (p textPage) TypeName() string { return textPageSchema.Name() }
func (p textPage) Fields() []Field  { return textPageSchema.Fields(p) }
func (p textPage) Replace(changes map[string]any) (Record, error) {
	return textPageSchema.Replace(p, changes)
}

type point struct {
	X, Y float64
}

var pointSchema = NewSchema("point",
	Float("x", func(p point) float64 { return p.X }, func(p *point, v float64) { p.X = v }),
	Float("y", func(p point) float64 { return p.Y }, func(p *point, v float64) { p.Y = v }),
)

func (p point) TypeName() string { return pointSchema.Name() }
func (p point) Fields() []Field  { return pointSchema.Fields(p) }
func (p point) Replace(changes map[string]any) (Record, error) {
	return pointSchema.Replace(p, changes)
}

// Note is exported so that records embedding it expose it to reflection,
// as the wordmaze element types do
type Note struct {
	Body string
}

var noteSchema = NewSchema("Note",
	Value("body", func(n Note) string { return n.Body }, func(n *Note, v string) { n.Body = v }),
)

func (n Note) TypeName() string { return noteSchema.Name() }
func (n Note) Fields() []Field  { return noteSchema.Fields(n) }
func (n Note) Replace(changes map[string]any) (Record, error) {
	return noteSchema.Replace(n, changes)
}

// labeled is built on Note, the way a subtype extends its parent
type labeled struct {
	Note
	Label string
}

var labeledSchema = Extend("labeled", noteSchema,
	func(l labeled) Note { return l.Note },
	func(l labeled, n Note) labeled { l.Note = n; return l },
	Value("label", func(l labeled) string { return l.Label }, func(l *labeled, v string) { l.Label = v }),
)

func (l labeled) TypeName() string { return labeledSchema.Name() }
func (l labeled) Fields() []Field  { return labeledSchema.Fields(l) }
func (l labeled) Replace(changes map[string]any) (Record, error) {
	return labeledSchema.Replace(l, changes)
}

const hobbit = "In a hole in the ground there lived a hobbit"

// ============================================================================
// Flattening Tests
// ============================================================================

func TestAsDict(t *testing.T) {
	page := textPage{Index: 0, Contents: &text{Text: hobbit}}

	got := AsDict(page, false)
	want := map[string]any{
		"index":    0,
		"contents": map[string]any{"text": hobbit},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("AsDict(flatten=false) = %v, want %v", got, want)
	}

	got = AsDict(page, true)
	want = map[string]any{"index": 0, "text": hobbit}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("AsDict(flatten=true) = %v, want %v", got, want)
	}
}

func TestAsTuple(t *testing.T) {
	page := textPage{Index: 0, Contents: &text{Text: hobbit}}

	got := AsTuple(page, false)
	want := []any{0, []any{hobbit}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("AsTuple(flatten=false) = %v, want %v", got, want)
	}

	got = AsTuple(page, true)
	want = []any{0, hobbit}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("AsTuple(flatten=true) = %v, want %v", got, want)
	}
}

func TestFlattenKeepsUnsetNestedRecord(t *testing.T) {
	page := textPage{Index: 3}

	got := Flatten(page)
	want := []Field{{Name: "index", Value: 3}, {Name: "contents", Value: nil}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Flatten() = %v, want %v", got, want)
	}
}

// ============================================================================
// Schema Tests
// ============================================================================

func TestSchemaReplace(t *testing.T) {
	p := point{X: 1, Y: 2}

	out, err := pointSchema.Replace(p, map[string]any{"x": 10})
	if err != nil {
		t.Fatalf("Replace() error = %v", err)
	}
	if out != (point{X: 10, Y: 2}) {
		t.Errorf("Replace() = %+v, want {10 2}", out)
	}
	if p != (point{X: 1, Y: 2}) {
		t.Errorf("Replace() modified the original: %+v", p)
	}

	_, err = pointSchema.Replace(p, map[string]any{"z": 1.0, "w": 2.0})
	var unknown *UnknownFieldsError
	if !errors.As(err, &unknown) {
		t.Fatalf("Replace(unknown) error = %v, want *UnknownFieldsError", err)
	}
	if !slices.Equal(unknown.Fields, []string{"w", "z"}) || unknown.Type != "point" {
		t.Errorf("UnknownFieldsError = %+v", unknown)
	}

	_, err = pointSchema.Replace(p, map[string]any{"x": "ten"})
	if !errors.Is(err, ErrFieldType) {
		t.Errorf("Replace(wrong type) error = %v, want ErrFieldType", err)
	}
}

func TestNestedAccessorAcceptsValuePointerAndNil(t *testing.T) {
	page := textPage{Index: 1}

	for _, value := range []any{text{Text: "a"}, &text{Text: "a"}} {
		out, err := textPageSchema.Replace(page, map[string]any{"contents": value})
		if err != nil {
			t.Fatalf("Replace(%T) error = %v", value, err)
		}
		if out.Contents == nil || out.Contents.Text != "a" {
			t.Errorf("Replace(%T) contents = %v", value, out.Contents)
		}
	}

	out, err := textPageSchema.Replace(textPage{Contents: &text{}}, map[string]any{"contents": nil})
	if err != nil || out.Contents != nil {
		t.Errorf("Replace(nil) = %+v, %v", out, err)
	}
}

func TestEqual(t *testing.T) {
	a := textPage{Index: 1, Contents: &text{Text: "x"}}
	b := textPage{Index: 1, Contents: &text{Text: "x"}}
	c := textPage{Index: 1, Contents: &text{Text: "y"}}

	if !Equal(a, b) {
		t.Error("Equal(a, b) = false, want true")
	}
	if Equal(a, c) {
		t.Error("Equal(a, c) = true, want false")
	}
	if Equal(text{Text: "x"}, point{}) {
		t.Error("records of different types compared equal")
	}
}

// ============================================================================
// Mapper Tests
// ============================================================================

func TestMapperShapes(t *testing.T) {
	upper := func(s string) string { return strings.ToUpper(s) }

	byRecord, err := MapRecord(func(r Record) (Record, error) {
		if p, ok := r.(point); ok {
			return point{X: p.Y, Y: p.X}, nil
		}
		return r, nil
	})
	if err != nil {
		t.Fatalf("MapRecord() error = %v", err)
	}

	byType, err := MapType[Record](func(tx text) (Record, error) {
		return text{Text: upper(tx.Text)}, nil
	})
	if err != nil {
		t.Fatalf("MapType() error = %v", err)
	}

	byFields, err := MapFields[Record](map[string]FieldMapper{
		"x": Map(func(x float64) float64 { return x - 10 }),
	})
	if err != nil {
		t.Fatalf("MapFields() error = %v", err)
	}

	byTypeFields, err := MapTypeFields[Record, text](map[string]FieldMapper{"text": Map(upper)})
	if err != nil {
		t.Fatalf("MapTypeFields() error = %v", err)
	}

	tests := []struct {
		name   string
		mapper Mapper[Record]
		in     Record
		want   Record
	}{
		{"record", byRecord, point{X: 1, Y: 2}, point{X: 2, Y: 1}},
		{"type match", byType, text{Text: "exit light"}, text{Text: "EXIT LIGHT"}},
		{"type passthrough", byType, point{X: 1}, point{X: 1}},
		{"fields", byFields, point{X: 1, Y: 2}, point{X: -9, Y: 2}},
		{"type fields match", byTypeFields, text{Text: "enter night"}, text{Text: "ENTER NIGHT"}},
		{"type fields passthrough", byTypeFields, point{Y: 4}, point{Y: 4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.mapper(tt.in)
			if err != nil {
				t.Fatalf("mapper error = %v", err)
			}
			if !Equal(got, tt.want) {
				t.Errorf("mapper(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestMapperUsageErrors(t *testing.T) {
	fn := func(r Record) (Record, error) { return r, nil }
	fields := map[string]FieldMapper{"x": Map(func(x float64) float64 { return x })}

	tests := []struct {
		name string
		spec MapperSpec[Record]
	}{
		{"both", MapperSpec[Record]{Func: fn, Fields: fields}},
		{"neither", MapperSpec[Record]{}},
		{"neither with type", MapperSpec[Record]{Match: Is[point]()}},
		{"nil field mapper", MapperSpec[Record]{Fields: map[string]FieldMapper{"x": nil}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := NewMapper(tt.spec)
			if !errors.Is(err, ErrUsage) {
				t.Errorf("NewMapper() error = %v, want ErrUsage", err)
			}
			if m != nil {
				t.Error("NewMapper() returned a mapper along with an error")
			}
		})
	}

	if _, err := MapRecord[Record](nil); !errors.Is(err, ErrUsage) {
		t.Errorf("MapRecord(nil) error = %v, want ErrUsage", err)
	}
	if _, err := MapType[Record, text](nil); !errors.Is(err, ErrUsage) {
		t.Errorf("MapType(nil) error = %v, want ErrUsage", err)
	}
	if _, err := MapFields[Record](nil); !errors.Is(err, ErrUsage) {
		t.Errorf("MapFields(nil) error = %v, want ErrUsage", err)
	}
	if _, err := NewMapper(MapperSpec[Record]{}); err == nil || !strings.Contains(err.Error(), "MapTypeFields") {
		t.Errorf("usage message does not list the accepted shapes: %v", err)
	}
}

func TestMapperUnknownField(t *testing.T) {
	m, err := MapFields[Record](map[string]FieldMapper{
		"wrong_key": func(v any) (any, error) { return v, nil },
		"x":         func(v any) (any, error) { return v, nil },
	})
	if err != nil {
		t.Fatalf("MapFields() error = %v", err)
	}

	_, err = m(text{Text: "wololooo"})
	var unknown *UnknownFieldsError
	if !errors.As(err, &unknown) {
		t.Fatalf("mapper error = %v, want *UnknownFieldsError", err)
	}
	if !errors.Is(err, ErrUsage) {
		t.Error("UnknownFieldsError does not wrap ErrUsage")
	}
	if !slices.Equal(unknown.Fields, []string{"wrong_key", "x"}) {
		t.Errorf("unknown fields = %v, want [wrong_key x]", unknown.Fields)
	}
	if !strings.Contains(err.Error(), "text") || !strings.Contains(err.Error(), "wrong_key") {
		t.Errorf("error message %q does not name the type and field", err.Error())
	}
}

func TestMapperFieldTypeMismatch(t *testing.T) {
	m, err := MapFields[Record](map[string]FieldMapper{
		"text": Map(func(n int) int { return n + 1 }),
	})
	if err != nil {
		t.Fatalf("MapFields() error = %v", err)
	}
	if _, err := m(text{Text: "abc"}); !errors.Is(err, ErrFieldType) {
		t.Errorf("mapper error = %v, want ErrFieldType", err)
	}
}

// ============================================================================
// Predicate Tests
// ============================================================================

func TestPredicateShapes(t *testing.T) {
	long := func(s string) bool { return len(s) > 5 }

	byRecord, err := FilterRecord(func(r Record) bool {
		p, ok := r.(point)
		return ok && p.X > 5
	})
	if err != nil {
		t.Fatalf("FilterRecord() error = %v", err)
	}

	byType, err := FilterType[Record](func(tx text) bool { return long(tx.Text) })
	if err != nil {
		t.Fatalf("FilterType() error = %v", err)
	}

	byFields, err := FilterFields[Record](map[string]FieldPredicate{
		"x": Test(func(x float64) bool { return x > 5 }),
		"y": Test(func(y float64) bool { return y > 5 }),
	})
	if err != nil {
		t.Fatalf("FilterFields() error = %v", err)
	}

	byTypeFields, err := FilterTypeFields[Record, text](map[string]FieldPredicate{"text": Test(long)})
	if err != nil {
		t.Fatalf("FilterTypeFields() error = %v", err)
	}

	tests := []struct {
		name string
		pred Predicate[Record]
		in   Record
		want bool
	}{
		{"record true", byRecord, point{X: 10}, true},
		{"record false", byRecord, point{X: 1}, false},
		{"type long", byType, text{Text: "One ring to rule them all"}, true},
		{"type short", byType, text{Text: "One"}, false},
		{"type other", byType, point{}, true},
		{"fields all hold", byFields, point{X: 10, Y: 10}, true},
		{"fields one fails", byFields, point{X: 10, Y: 1}, false},
		{"type fields long", byTypeFields, text{Text: "One ring to rule them all"}, true},
		{"type fields short", byTypeFields, text{Text: "One"}, false},
		{"type fields other", byTypeFields, point{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.pred(tt.in)
			if err != nil {
				t.Fatalf("predicate error = %v", err)
			}
			if got != tt.want {
				t.Errorf("predicate(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestPredicateUsageErrors(t *testing.T) {
	fn := func(r Record) (bool, error) { return true, nil }
	fields := map[string]FieldPredicate{"x": Test(func(float64) bool { return true })}

	if _, err := NewPredicate(PredicateSpec[Record]{Func: fn, Fields: fields}); !errors.Is(err, ErrUsage) {
		t.Errorf("both: error = %v, want ErrUsage", err)
	}
	if _, err := NewPredicate(PredicateSpec[Record]{}); !errors.Is(err, ErrUsage) {
		t.Errorf("neither: error = %v, want ErrUsage", err)
	}
	if _, err := FilterRecord[Record](nil); !errors.Is(err, ErrUsage) {
		t.Errorf("FilterRecord(nil): error = %v, want ErrUsage", err)
	}

	p, err := FilterFields[Record](map[string]FieldPredicate{
		"wrong_key": func(any) (bool, error) { return true, nil },
	})
	if err != nil {
		t.Fatalf("FilterFields() error = %v", err)
	}
	_, err = p(text{Text: "wololooo"})
	var unknown *UnknownFieldsError
	if !errors.As(err, &unknown) || unknown.Type != "text" {
		t.Errorf("predicate error = %v, want *UnknownFieldsError for text", err)
	}
}

// ============================================================================
// Sequence Tests
// ============================================================================

func TestSequence(t *testing.T) {
	examples := NewSequence[Record](point{X: 0, Y: 10}, point{X: 1, Y: 11})

	if !examples.Contains(point{X: 0, Y: 10}) {
		t.Error("Contains({0 10}) = false, want true")
	}
	if examples.Contains(point{X: 2, Y: 12}) {
		t.Error("Contains({2 12}) = true, want false")
	}
	examples.Append(point{X: 2, Y: 12})
	if !examples.Contains(point{X: 2, Y: 12}) || examples.Len() != 3 {
		t.Errorf("after Append: %v", examples)
	}

	tuples := slices.Collect(examples.Tuples())
	wantTuples := [][]any{{0.0, 10.0}, {1.0, 11.0}, {2.0, 12.0}}
	if !reflect.DeepEqual(tuples, wantTuples) {
		t.Errorf("Tuples() = %v, want %v", tuples, wantTuples)
	}

	dicts := slices.Collect(examples.Dicts())
	if len(dicts) != 3 || dicts[2]["x"] != 2.0 || dicts[2]["y"] != 12.0 {
		t.Errorf("Dicts() = %v", dicts)
	}
}

func TestSequenceMapFilterCopyOnWrite(t *testing.T) {
	seq := NewSequence[Record](point{X: 1}, text{Text: "a"}, point{X: 7})

	shift, _ := MapTypeFields[Record, point](map[string]FieldMapper{
		"x": Map(func(x float64) float64 { return x * 2 }),
	})
	mapped, err := seq.Map(shift)
	if err != nil {
		t.Fatalf("Map() error = %v", err)
	}
	if !Equal(mapped.At(0), point{X: 2}) || !Equal(mapped.At(2), point{X: 14}) {
		t.Errorf("Map() = %v", mapped)
	}
	if !Equal(seq.At(0), point{X: 1}) {
		t.Errorf("Map() modified the original: %v", seq)
	}

	big, _ := FilterTypeFields[Record, point](map[string]FieldPredicate{
		"x": Test(func(x float64) bool { return x > 5 }),
	})
	filtered, err := seq.Filter(big)
	if err != nil {
		t.Fatalf("Filter() error = %v", err)
	}
	if filtered.Len() != 2 || seq.Len() != 3 {
		t.Errorf("Filter() len = %d, original len = %d", filtered.Len(), seq.Len())
	}

	bad, _ := MapFields[Record](map[string]FieldMapper{"x": Map(func(x float64) float64 { return x })})
	if out, err := seq.Map(bad); err == nil || out != nil {
		t.Errorf("Map() over a record without x = %v, %v; want error", out, err)
	}
}

func TestSequenceTypeViews(t *testing.T) {
	seq := NewSequence[Record](point{X: 1}, text{Text: "a"}, point{X: 2}, text{Text: "b"})

	texts := OfType[text](seq)
	first := slices.Collect(texts)
	second := slices.Collect(texts)
	want := []text{{Text: "a"}, {Text: "b"}}
	if !slices.Equal(first, want) || !slices.Equal(second, want) {
		t.Errorf("OfType() = %v then %v, want %v twice", first, second, want)
	}

	points := seq.Select(Is[point]())
	if points.Len() != 2 || !Equal(points.At(1), point{X: 2}) {
		t.Errorf("Select() = %v", points)
	}
}

// ============================================================================
// Type Restriction Tests
// ============================================================================

func TestIsMatchesEmbeddingRecords(t *testing.T) {
	sign := labeled{Note: Note{Body: "exit"}, Label: "door"}

	if !Is[Note]()(sign) {
		t.Error("Is[Note]() rejected a record embedding Note")
	}
	if Is[point]()(sign) {
		t.Error("Is[point]() accepted a record without a point")
	}
	if Is[labeled]()(Note{Body: "exit"}) {
		t.Error("Is[labeled]() accepted the embedded type")
	}

	got, ok := As[Note](sign)
	if !ok || got.Body != "exit" {
		t.Errorf("As[Note]() = %v, %v, want the embedded Note", got, ok)
	}
}

func TestTypeRestrictedTransformsOnEmbeddingRecords(t *testing.T) {
	sign := labeled{Note: Note{Body: "exit"}, Label: "door"}
	shout := func(s string) string { return s + "!" }

	byTypeFields, err := MapTypeFields[Record, Note](map[string]FieldMapper{"body": Map(shout)})
	if err != nil {
		t.Fatalf("MapTypeFields() error = %v", err)
	}
	got, err := byTypeFields(sign)
	if err != nil {
		t.Fatalf("mapper error = %v", err)
	}
	if want := (labeled{Note: Note{Body: "exit!"}, Label: "door"}); !Equal(got, want) {
		t.Errorf("MapTypeFields mapper = %v, want %v", got, want)
	}

	byType, err := MapType[Record](func(n Note) (Record, error) {
		return Note{Body: shout(n.Body)}, nil
	})
	if err != nil {
		t.Fatalf("MapType() error = %v", err)
	}
	got, err = byType(sign)
	if err != nil {
		t.Fatalf("mapper error = %v", err)
	}
	if want := (labeled{Note: Note{Body: "exit!"}, Label: "door"}); !Equal(got, want) {
		t.Errorf("MapType mapper = %v, want %v keeping its label", got, want)
	}

	reject, err := FilterType[Record](func(Note) bool { return false })
	if err != nil {
		t.Fatalf("FilterType() error = %v", err)
	}
	if keep, err := reject(sign); err != nil || keep {
		t.Errorf("FilterType predicate = %v, %v, want the embedding record tested and rejected", keep, err)
	}
	if keep, err := reject(point{}); err != nil || !keep {
		t.Errorf("FilterType predicate on other type = %v, %v, want accepted", keep, err)
	}

	short, err := FilterTypeFields[Record, Note](map[string]FieldPredicate{
		"body": Test(func(s string) bool { return len(s) < 3 }),
	})
	if err != nil {
		t.Fatalf("FilterTypeFields() error = %v", err)
	}
	if keep, err := short(sign); err != nil || keep {
		t.Errorf("FilterTypeFields predicate = %v, %v, want rejected", keep, err)
	}
}

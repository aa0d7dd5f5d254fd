package wordmaze

import (
	"errors"
	"reflect"
	"slices"
	"testing"

	"github.com/gardar/wordmaze/pkg/record"
)

func testMaze() *WordMaze {
	return New(
		helloPage(),
		NewPage(Shape{Height: 50, Width: 200}, BottomLeft,
			textBox(110, 180, 40, 45, "Hey ho", 0.2),
		),
	)
}

func TestWordMazeShapes(t *testing.T) {
	maze := testMaze()

	want := []Shape{{Height: 100, Width: 80}, {Height: 50, Width: 200}}
	if got := maze.Shapes(); !reflect.DeepEqual(got, want) {
		t.Errorf("Shapes() = %v, want %v", got, want)
	}
}

func TestWordMazeTextBoxes(t *testing.T) {
	maze := testMaze()
	maze.At(0).Append(Figure{FloatingElement: FloatingElement{Box: Box{X2: 1, Y2: 1}}})
	maze.At(1).Insert(0, Table{})

	want := []PageTextBox{
		{TextBox: textBox(10, 50, 20, 30, "Hello", 0.7), Page: 0},
		{TextBox: textBox(60, 75, 80, 85, "Bye", 0.6), Page: 0},
		{TextBox: textBox(110, 180, 40, 45, "Hey ho", 0.2), Page: 1},
	}

	// views are restartable
	for range 2 {
		got := slices.Collect(maze.TextBoxes())
		if !reflect.DeepEqual(got, want) {
			t.Errorf("TextBoxes() = %+v, want %+v", got, want)
		}
	}
}

func TestWordMazeTextBoxesReindexPages(t *testing.T) {
	stored := PageTextBox{TextBox: textBox(0, 1, 0, 1, "moved", 1), Page: 9}
	maze := New(
		NewPage(Shape{Height: 1, Width: 1}, TopLeft),
		NewPage(Shape{Height: 1, Width: 1}, TopLeft, stored),
	)

	got := slices.Collect(maze.TextBoxes())
	if len(got) != 1 || got[0].Page != 1 || got[0].Text != "moved" {
		t.Errorf("TextBoxes() = %+v", got)
	}
}

func TestWordMazeTuples(t *testing.T) {
	maze := testMaze()

	want := [][]any{
		{10.0, 50.0, 20.0, 30.0, "Hello", 0.7, 0},
		{60.0, 75.0, 80.0, 85.0, "Bye", 0.6, 0},
		{110.0, 180.0, 40.0, 45.0, "Hey ho", 0.2, 1},
	}
	if got := slices.Collect(maze.Tuples()); !reflect.DeepEqual(got, want) {
		t.Errorf("Tuples() = %v, want %v", got, want)
	}
}

func TestWordMazeDicts(t *testing.T) {
	maze := testMaze()

	want := []map[string]any{
		{"page": 0, "x1": 10.0, "x2": 50.0, "y1": 20.0, "y2": 30.0, "text": "Hello", "confidence": 0.7},
		{"page": 0, "x1": 60.0, "x2": 75.0, "y1": 80.0, "y2": 85.0, "text": "Bye", "confidence": 0.6},
		{"page": 1, "x1": 110.0, "x2": 180.0, "y1": 40.0, "y2": 45.0, "text": "Hey ho", "confidence": 0.2},
	}
	if got := slices.Collect(maze.Dicts()); !reflect.DeepEqual(got, want) {
		t.Errorf("Dicts() = %v, want %v", got, want)
	}
}

func TestWordMazeMap(t *testing.T) {
	maze := testMaze()

	m, err := record.MapFields[Element](map[string]record.FieldMapper{
		"x1": record.Map(func(v float64) float64 { return v - 5 }),
		"x2": record.Map(func(v float64) float64 { return v + 10 }),
		"y1": record.Map(func(v float64) float64 { return v - 10 }),
		"y2": record.Map(func(v float64) float64 { return v + 5 }),
	})
	if err != nil {
		t.Fatalf("MapFields() error = %v", err)
	}

	mapped, err := maze.Map(m)
	if err != nil {
		t.Fatalf("Map() error = %v", err)
	}

	expected := New(
		NewPage(Shape{Height: 100, Width: 80}, TopLeft,
			textBox(10-5, 50+10, 20-10, 30+5, "Hello", 0.7),
			textBox(60-5, 75+10, 80-10, 85+5, "Bye", 0.6),
		),
		NewPage(Shape{Height: 50, Width: 200}, BottomLeft,
			textBox(110-5, 180+10, 40-10, 45+5, "Hey ho", 0.2),
		),
	)
	got, want := slices.Collect(mapped.Tuples()), slices.Collect(expected.Tuples())
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Map().Tuples() = %v, want %v", got, want)
	}
	if !maze.At(0).Equal(helloPage()) {
		t.Errorf("Map() modified the source maze")
	}
}

func TestWordMazeFilter(t *testing.T) {
	maze := testMaze()

	p, err := record.FilterFields[Element](map[string]record.FieldPredicate{
		"confidence": record.Test(func(c float64) bool { return c >= 0.65 }),
	})
	if err != nil {
		t.Fatalf("FilterFields() error = %v", err)
	}

	filtered, err := maze.Filter(p)
	if err != nil {
		t.Fatalf("Filter() error = %v", err)
	}
	if filtered.Len() != maze.Len() {
		t.Fatalf("Filter() removed pages: got %d, want %d", filtered.Len(), maze.Len())
	}
	if !reflect.DeepEqual(filtered.Shapes(), maze.Shapes()) {
		t.Errorf("Filter() changed shapes: %v", filtered.Shapes())
	}
	if filtered.At(1).Len() != 0 {
		t.Errorf("second page kept %d elements, want 0", filtered.At(1).Len())
	}

	want := [][]any{{10.0, 50.0, 20.0, 30.0, "Hello", 0.7, 0}}
	if got := slices.Collect(filtered.Tuples()); !reflect.DeepEqual(got, want) {
		t.Errorf("Filter().Tuples() = %v, want %v", got, want)
	}
}

func TestWordMazeRebase(t *testing.T) {
	maze := testMaze()

	rebased, err := maze.Rebase(TopLeft)
	if err != nil {
		t.Fatalf("Rebase() error = %v", err)
	}
	if rebased.At(0) != maze.At(0) {
		t.Errorf("page already at TOP_LEFT was not returned as is")
	}
	last := rebased.At(-1)
	if last.Origin != TopLeft {
		t.Errorf("Origin = %s, want TOP_LEFT", last.Origin)
	}
	if got := last.At(0).Bounds(); got != (Box{X1: 110, X2: 180, Y1: 5, Y2: 10}) {
		t.Errorf("rebased box = %+v", got)
	}

	_, err = maze.Rebase(Origin(-1))
	var rebaseErr *RebaseError
	if !errors.As(err, &rebaseErr) {
		t.Fatalf("Rebase() error = %v, want RebaseError", err)
	}
}

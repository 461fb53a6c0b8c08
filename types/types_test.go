package types

import "testing"

func TestImageEntryCopiesTags(t *testing.T) {
	tags := []string{"cat", "cute"}
	e := NewImageEntry("cats", "t.jpg", "f.jpg", tags)
	tags[0] = "dog"
	if got := e.Tags()[0]; got != "cat" {
		t.Fatalf("entry changed with caller slice: %q", got)
	}
	e.Tags()[1] = "ugly"
	if got := e.AltText(); got != "cat, cute" {
		t.Fatalf("AltText = %q", got)
	}
}

func TestCatalogCategories(t *testing.T) {
	c := Catalog{
		NewImageEntry("Cats", "", "", nil),
		NewImageEntry("", "", "", nil),
		NewImageEntry("dogs", "", "", nil),
		NewImageEntry("cats", "", "", nil),
	}
	got := c.Categories()
	want := []PageContext{"cats", "dogs"}
	if len(got) != len(want) {
		t.Fatalf("Categories() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Categories() = %v, want %v", got, want)
		}
	}
}

func TestCatalogCategoriesNoTrim(t *testing.T) {
	got := Catalog{NewImageEntry(" Cats ", "", "", nil)}.Categories()
	if len(got) != 1 || got[0] != " cats " {
		t.Fatalf("Categories() = %q, want [\" cats \"]", got)
	}
}

func TestPageContext(t *testing.T) {
	if !Homepage.IsHomepage() || PageContext("cats").IsHomepage() {
		t.Fatal("IsHomepage mismatch")
	}
}

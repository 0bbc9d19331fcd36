package chat

import (
	"testing"

	"central/models"
)

func TestExtractRestrictions(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"explicit sin gluten", "quiero un menú sin gluten, por favor", "sin gluten"},
		{"vegetarian", "Soy vegetariano", "vegetariano"},
		{"vegan feminine", "ella es vegana", "vegano"},
		{"allergy to gluten", "tengo alergia al gluten", "alergia al gluten"},
		{"allergy to shellfish", "tengo alergia a los mariscos", "alergia a los mariscos"},
		{"gluten dislike suppressed", "Soy vegetariano y no me gusta el gluten", "vegetariano"},
		{"bare gluten dislike yields nothing", "no me gusta el gluten", ""},
		{"plain dislike keeps complement", "no me gusta el cilantro", "el cilantro"},
		{"sin lacteos canonical", "sin lácteos", "sin lactosa"},
		{"contains gluten", "el plato contiene gluten", "contiene gluten"},
		{"no signal", "quiero reservar para el viernes", ""},
		{"empty", "   ", ""},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := ExtractRestrictions(c.in); got != c.want {
				t.Errorf("ExtractRestrictions(%q) = %q, want %q", c.in, got, c.want)
			}
		})
	}
}

func TestExtractRestrictionsDedupes(t *testing.T) {
	got := ExtractRestrictions("sin gluten, repito, SIN GLUTEN y además vegetariano")
	if got != "sin gluten; vegetariano" {
		t.Errorf("got %q, want %q", got, "sin gluten; vegetariano")
	}
}

func TestMergeRestrictions(t *testing.T) {
	cases := []struct {
		name     string
		existing string
		incoming string
		want     string
	}{
		{"both empty", "", "", ""},
		{"fill from incoming", "", "sin gluten", "sin gluten"},
		{"keep existing", "vegetariano", "", "vegetariano"},
		{"union dedupes", "sin gluten", "Sin Gluten; vegano", "sin gluten; vegano"},
		{"none replaced by real token", models.NoRestrictions, "sin gluten", "sin gluten"},
		{"real token not displaced by none", "sin gluten", models.NoRestrictions, "sin gluten"},
		{"none alone survives", models.NoRestrictions, "", models.NoRestrictions},
		{"split on mixed separators", "", "sin gluten, vegano / sin lactosa", "sin gluten; vegano; sin lactosa"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := MergeRestrictions(c.existing, c.incoming); got != c.want {
				t.Errorf("MergeRestrictions(%q, %q) = %q, want %q", c.existing, c.incoming, got, c.want)
			}
		})
	}
}

func TestNormalizeRestrictionToken(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"SIN GLUTEN", "sin gluten"},
		{"menú sin gluten", "sin gluten"},
		{"contiene gluten", "contiene gluten"},
		{"alergia   al   gluten", "alergia al gluten"},
		{"sin lácteos", "sin lactosa"},
		{"vegetariana", "vegetariano"},
		{"Vegano", "vegano"},
		{"alergico", "alergia"},
		{"el cilantro,", "el cilantro"},
		{"", ""},
	}
	for _, c := range cases {
		if got := NormalizeRestrictionToken(c.in); got != c.want {
			t.Errorf("NormalizeRestrictionToken(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

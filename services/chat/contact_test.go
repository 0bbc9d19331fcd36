package chat

import "testing"

func TestExtractContact(t *testing.T) {
	cases := []struct {
		name    string
		in      string
		want    *ContactInfo
		wantNil bool
	}{
		{
			name: "full contact line",
			in:   "Me llamo Juan Perez, mi DNI es 71234567 y mi teléfono 987654321",
			want: &ContactInfo{Name: "Juan Perez", DocumentID: "71234567", Phone: "987654321"},
		},
		{
			name: "labeled name",
			in:   "Nombre completo: Maria Rodriguez",
			want: &ContactInfo{Name: "Maria Rodriguez"},
		},
		{
			name: "soy introduction",
			in:   "soy Ana Lucia Flores",
			want: &ContactInfo{Name: "Ana Lucia Flores"},
		},
		{
			name: "phone with country code",
			in:   "llámame al +51 987 654 321",
			want: &ContactInfo{Phone: "+51987654321"},
		},
		{
			name: "dni only",
			in:   "dni: 46881320",
			want: &ContactInfo{DocumentID: "46881320"},
		},
		{
			name:    "nothing",
			in:      "quiero reservar para mañana",
			wantNil: true,
		},
		{
			name:    "empty",
			in:      "   ",
			wantNil: true,
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := ExtractContact(c.in)
			if c.wantNil {
				if got != nil {
					t.Fatalf("ExtractContact(%q) = %+v, want nil", c.in, got)
				}
				return
			}
			if got == nil {
				t.Fatalf("ExtractContact(%q) = nil, want %+v", c.in, c.want)
			}
			if got.Name != c.want.Name || got.DocumentID != c.want.DocumentID || got.Phone != c.want.Phone {
				t.Errorf("ExtractContact(%q) = %+v, want %+v", c.in, got, c.want)
			}
		})
	}
}

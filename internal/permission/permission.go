// Package permission implements the capability set attached to each usuário:
// a tagged hierarchy módulo → tela → subtela. Access checks go through
// Permite; there is no dynamic property indexing anywhere else.
package permission

import "encoding/json"

// Conjunto is an immutable capability set.
// Granting a módulo with no telas grants every tela under it; granting a tela
// with no subtelas grants every subtela under it.
type Conjunto struct {
	modulos map[string]moduloPermitido
}

type moduloPermitido struct {
	total bool
	telas map[string]telaPermitida
}

type telaPermitida struct {
	total    bool
	subtelas map[string]struct{}
}

// rawConjunto is the persisted JSON shape:
//
//	{"caixa": {}, "lancamentos": {"telas": {"lista": {}, "pagamento": {"subtelas": ["estornar"]}}}}
type rawConjunto map[string]struct {
	Telas map[string]struct {
		Subtelas []string `json:"subtelas"`
	} `json:"telas"`
}

// Parse decodes a serialized capability set. nil or empty input yields an
// empty set (nothing allowed).
func Parse(raw []byte) (*Conjunto, error) {
	c := &Conjunto{modulos: make(map[string]moduloPermitido)}
	if len(raw) == 0 {
		return c, nil
	}

	var decoded rawConjunto
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, err
	}

	for modulo, m := range decoded {
		mp := moduloPermitido{total: len(m.Telas) == 0, telas: make(map[string]telaPermitida)}
		for tela, t := range m.Telas {
			tp := telaPermitida{total: len(t.Subtelas) == 0, subtelas: make(map[string]struct{})}
			for _, sub := range t.Subtelas {
				tp.subtelas[sub] = struct{}{}
			}
			mp.telas[tela] = tp
		}
		c.modulos[modulo] = mp
	}
	return c, nil
}

// Permite reports whether the set grants access to módulo/tela/subtela.
// tela and subtela may be empty to check a coarser level.
func (c *Conjunto) Permite(modulo, tela, subtela string) bool {
	if c == nil {
		return false
	}
	mp, ok := c.modulos[modulo]
	if !ok {
		return false
	}
	if tela == "" || mp.total {
		return true
	}
	tp, ok := mp.telas[tela]
	if !ok {
		return false
	}
	if subtela == "" || tp.total {
		return true
	}
	_, ok = tp.subtelas[subtela]
	return ok
}

package models

// Fare is one entry in an engine's published fare table, in product-tier
// order (saver tiers first, then standard/peak products).
type Fare struct {
	Code  string `json:"code"`
	Name  string `json:"name"`
	Saver bool   `json:"saver"`
}

// Engine is the reference entry for one booking/search backend.
type Engine struct {
	ID    EngineID `json:"id"`
	Name  string   `json:"name"`
	Fares []Fare   `json:"fares"`
}

// Fare looks up a fare in the engine's published table by base code.
func (e *Engine) Fare(code string) (Fare, bool) {
	for _, f := range e.Fares {
		if f.Code == code {
			return f, true
		}
	}
	return Fare{}, false
}

// CabinOrder is a total order over cabin codes, most premium first. It is
// configured from reference data, never hard-coded in the pipeline.
type CabinOrder []CabinCode

// Rank returns the position of a cabin in the order; smaller is more
// premium. Unknown cabins rank below everything known.
func (o CabinOrder) Rank(c CabinCode) int {
	for i, cc := range o {
		if cc == c {
			return i
		}
	}
	return len(o)
}

// Best returns the more premium of two cabins.
func (o CabinOrder) Best(a, b CabinCode) CabinCode {
	if o.Rank(b) < o.Rank(a) {
		return b
	}
	return a
}

// Catalog bundles the read-only reference data consumed by the pipeline:
// engine fare tables, airline display names and the cabin order. It is shared
// across all computations and never mutated by them.
type Catalog struct {
	Engines  map[EngineID]*Engine `json:"engines"`
	Airlines map[string]string    `json:"airlines"` // code -> display name
	Cabins   CabinOrder           `json:"cabins"`
}

// Engine resolves an engine reference entry. Missing entries are a data gap:
// callers skip the engine's awards rather than erroring.
func (c *Catalog) Engine(id EngineID) (*Engine, bool) {
	e, ok := c.Engines[id]
	return e, ok
}

// AirlineName resolves an airline code to its display name, falling back to
// the code itself when the airline is not in the catalogue.
func (c *Catalog) AirlineName(code string) string {
	if name, ok := c.Airlines[code]; ok {
		return name
	}
	return code
}

// FareSaver reports whether a fare base code is a saver-tier product for the
// given engine. The second result is false when the engine or code is
// unknown, in which case the token is dropped during filtering.
func (c *Catalog) FareSaver(id EngineID, code string) (bool, bool) {
	e, ok := c.Engines[id]
	if !ok {
		return false, false
	}
	f, ok := e.Fare(code)
	if !ok {
		return false, false
	}
	return f.Saver, true
}

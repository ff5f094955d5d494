package analysis

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Term is one fitted coefficient.
type Term struct {
	Name string
	Coef float64
	SE   float64
	P    float64
}

// Model is a fitted OLS specification. Terms[0] is always the
// constant.
type Model struct {
	Name  string
	Terms []Term
	R2    float64
	N     int
}

// Term looks up a coefficient by name.
func (m *Model) Term(name string) (Term, bool) {
	for _, t := range m.Terms {
		if t.Name == name {
			return t, true
		}
	}
	return Term{}, false
}

// HasPrefix reports whether any term name starts with prefix, used to
// mark dummy-control blocks in the summary table.
func (m *Model) HasPrefix(prefix string) bool {
	for _, t := range m.Terms {
		if strings.HasPrefix(t.Name, prefix) {
			return true
		}
	}
	return false
}

// design is a named column set; the constant is added at fit time.
type design struct {
	n     int
	names []string
	cols  [][]float64
}

func newDesign(n int) *design { return &design{n: n} }

func (d *design) add(name string, col []float64) {
	d.names = append(d.names, name)
	d.cols = append(d.cols, col)
}

func (d *design) clone() *design {
	c := newDesign(d.n)
	c.names = append([]string(nil), d.names...)
	c.cols = append([][]float64(nil), d.cols...)
	return c
}

// addDummies expands a categorical column into indicator columns, one
// per distinct value in ascending order with the first level dropped
// as the reference category.
func (d *design) addDummies(obs []Obs, get func(*Obs) int64, prefix string) {
	seen := map[int64]bool{}
	for i := range obs {
		seen[get(&obs[i])] = true
	}
	levels := make([]int64, 0, len(seen))
	for v := range seen {
		levels = append(levels, v)
	}
	sort.Slice(levels, func(i, j int) bool { return levels[i] < levels[j] })

	for _, lvl := range levels[1:] {
		col := make([]float64, len(obs))
		for i := range obs {
			if get(&obs[i]) == lvl {
				col[i] = 1
			}
		}
		d.add(fmt.Sprintf("%s_%d", prefix, lvl), col)
	}
}

func column(obs []Obs, get func(*Obs) float64) []float64 {
	col := make([]float64, len(obs))
	for i := range obs {
		col[i] = get(&obs[i])
	}
	return col
}

// RunModels fits the five nested specifications used in the study:
//
//	(1) score ~ public_school
//	(2) + hits
//	(3) + booklet-code dummies
//	(4) + income-bracket dummies
//	(5) + is_female + race dummies
func RunModels(obs []Obs) ([]*Model, error) {
	if len(obs) == 0 {
		return nil, fmt.Errorf("no observations")
	}
	y := column(obs, func(o *Obs) float64 { return o.Score })

	d := newDesign(len(obs))
	d.add("public_school", column(obs, func(o *Obs) float64 { return o.PublicSchool }))
	d1 := d.clone()

	d.add("hits", column(obs, func(o *Obs) float64 { return o.Hits }))
	d2 := d.clone()

	d.addDummies(obs, func(o *Obs) int64 { return o.Booklet }, "exam_code")
	d3 := d.clone()

	d.addDummies(obs, func(o *Obs) int64 { return o.IncomeBracket }, "income_bracket")
	d4 := d.clone()

	d.add("is_female", column(obs, func(o *Obs) float64 { return o.IsFemale }))
	d.addDummies(obs, func(o *Obs) int64 { return o.RaceColor }, "race_color")
	d5 := d

	var models []*Model
	for i, spec := range []*design{d1, d2, d3, d4, d5} {
		m, err := fitOLS(y, spec)
		if err != nil {
			return nil, fmt.Errorf("model %d: %w", i+1, err)
		}
		m.Name = fmt.Sprintf("model_%d", i+1)
		models = append(models, m)
	}
	return models, nil
}

// fitOLS solves the least-squares problem with an intercept via QR and
// derives classical standard errors, two-sided t-test p-values, and R².
func fitOLS(y []float64, d *design) (*Model, error) {
	n := len(y)
	p := len(d.cols) + 1
	if n <= p {
		return nil, fmt.Errorf("%d observations for %d parameters", n, p)
	}

	X := mat.NewDense(n, p, nil)
	for i := 0; i < n; i++ {
		X.Set(i, 0, 1)
	}
	for j, col := range d.cols {
		X.SetCol(j+1, col)
	}
	yv := mat.NewVecDense(n, y)

	var qr mat.QR
	qr.Factorize(X)
	var beta mat.VecDense
	if err := qr.SolveVecTo(&beta, false, yv); err != nil {
		return nil, fmt.Errorf("solve least squares: %w", err)
	}

	var fitted mat.VecDense
	fitted.MulVec(X, &beta)
	rss := 0.0
	for i := 0; i < n; i++ {
		r := y[i] - fitted.AtVec(i)
		rss += r * r
	}
	ybar := stat.Mean(y, nil)
	tss := 0.0
	for i := 0; i < n; i++ {
		dy := y[i] - ybar
		tss += dy * dy
	}

	var xtx, inv mat.Dense
	xtx.Mul(X.T(), X)
	if err := inv.Inverse(&xtx); err != nil {
		return nil, fmt.Errorf("design matrix is singular: %w", err)
	}
	sigma2 := rss / float64(n-p)
	tdist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(n - p)}

	names := append([]string{"const"}, d.names...)
	m := &Model{N: n, Terms: make([]Term, p)}
	for j := 0; j < p; j++ {
		se := math.Sqrt(sigma2 * inv.At(j, j))
		coef := beta.AtVec(j)
		t := Term{Name: names[j], Coef: coef, SE: se}
		if se > 0 {
			t.P = 2 * tdist.Survival(math.Abs(coef/se))
		}
		m.Terms[j] = t
	}
	if tss > 0 {
		m.R2 = 1 - rss/tss
	}
	return m, nil
}

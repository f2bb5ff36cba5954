// Package waves integrates a water height field with a second-order
// finite-difference scheme on a fixed grid. Boundary cells are pinned at
// rest; only interior cells move.
package waves

import (
	"math"

	"github.com/cockroachdb/errors"
	"github.com/go-gl/mathgl/mgl32"
)

// Waves holds two time levels of the height field plus derived normals
// and x-tangents. Solutions swap by slice exchange, no copying.
type Waves struct {
	rows, cols int
	dx, dt     float32
	k1, k2, k3 float32

	prev     []mgl32.Vec3
	curr     []mgl32.Vec3
	normals  []mgl32.Vec3
	tangentX []mgl32.Vec3

	accum float32
}

// New builds an m×n grid with spatial step dx, simulation time step dt,
// wave speed and damping. The scheme is conditionally stable; dt beyond
// the stability bound is rejected.
func New(m, n int, dx, dt, speed, damping float32) (*Waves, error) {
	if m < 3 || n < 3 {
		return nil, errors.Newf("waves: grid %dx%d too small, need at least 3x3", m, n)
	}
	denom := 4 * speed * speed / (dx * dx)
	maxDt := (damping + float32(math.Sqrt(float64(damping*damping+2*denom)))) / denom
	if dt > maxDt {
		return nil, errors.Newf("waves: dt %v exceeds stability bound %v for speed %v, dx %v, damping %v",
			dt, maxDt, speed, dx, damping)
	}

	d := damping*dt + 2
	e := speed * speed * dt * dt / (dx * dx)
	w := &Waves{
		rows: m,
		cols: n,
		dx:   dx,
		dt:   dt,
		k1:   (damping*dt - 2) / d,
		k2:   (4 - 8*e) / d,
		k3:   2 * e / d,

		prev:     make([]mgl32.Vec3, m*n),
		curr:     make([]mgl32.Vec3, m*n),
		normals:  make([]mgl32.Vec3, m*n),
		tangentX: make([]mgl32.Vec3, m*n),
	}

	halfW := 0.5 * float32(n-1) * dx
	halfD := 0.5 * float32(m-1) * dx
	for i := 0; i < m; i++ {
		z := halfD - float32(i)*dx
		for j := 0; j < n; j++ {
			x := -halfW + float32(j)*dx
			k := i*n + j
			w.prev[k] = mgl32.Vec3{x, 0, z}
			w.curr[k] = mgl32.Vec3{x, 0, z}
			w.normals[k] = mgl32.Vec3{0, 1, 0}
			w.tangentX[k] = mgl32.Vec3{1, 0, 0}
		}
	}
	return w, nil
}

func (w *Waves) RowCount() int      { return w.rows }
func (w *Waves) ColumnCount() int   { return w.cols }
func (w *Waves) VertexCount() int   { return w.rows * w.cols }
func (w *Waves) TriangleCount() int { return (w.rows - 1) * (w.cols - 1) * 2 }

// Width is the grid extent along x.
func (w *Waves) Width() float32 { return float32(w.cols) * w.dx }

// Depth is the grid extent along z.
func (w *Waves) Depth() float32 { return float32(w.rows) * w.dx }

// Position returns the current solution vertex at flat index i.
func (w *Waves) Position(i int) mgl32.Vec3 { return w.curr[i] }

// Normal returns the derived unit normal at flat index i.
func (w *Waves) Normal(i int) mgl32.Vec3 { return w.normals[i] }

// TangentX returns the derived unit x-tangent at flat index i.
func (w *Waves) TangentX(i int) mgl32.Vec3 { return w.tangentX[i] }

// Update accumulates elapsed time and advances the field in fixed dt
// sub-steps. Fractional remainders carry over to the next call.
func (w *Waves) Update(dt float32) {
	w.accum += dt
	for w.accum >= w.dt {
		w.step()
		w.accum -= w.dt
	}
}

func (w *Waves) step() {
	n := w.cols
	// The previous solution is overwritten in place with the next time
	// level, then the slices swap roles. Boundary rows/columns are never
	// touched.
	for i := 1; i < w.rows-1; i++ {
		for j := 1; j < n-1; j++ {
			k := i*n + j
			w.prev[k][1] = w.k1*w.prev[k][1] +
				w.k2*w.curr[k][1] +
				w.k3*(w.curr[k+n][1]+w.curr[k-n][1]+w.curr[k+1][1]+w.curr[k-1][1])
		}
	}
	w.prev, w.curr = w.curr, w.prev

	for i := 1; i < w.rows-1; i++ {
		for j := 1; j < n-1; j++ {
			k := i*n + j
			l := w.curr[k-1][1]
			r := w.curr[k+1][1]
			b := w.curr[k+n][1]
			t := w.curr[k-n][1]
			nrm := mgl32.Vec3{l - r, 2 * w.dx, b - t}
			w.normals[k] = nrm.Normalize()

			tan := mgl32.Vec3{2 * w.dx, r - l, 0}
			w.tangentX[k] = tan.Normalize()
		}
	}
}

// Disturb kicks the interior cell (i,j) up by magnitude and its four
// neighbors by half. Callers must stay off the boundary.
func (w *Waves) Disturb(i, j int, magnitude float32) {
	if i <= 0 || i >= w.rows-1 || j <= 0 || j >= w.cols-1 {
		panic("waves: disturb outside interior")
	}
	half := 0.5 * magnitude
	k := i*w.cols + j
	w.curr[k][1] += magnitude
	w.curr[k+1][1] += half
	w.curr[k-1][1] += half
	w.curr[k+w.cols][1] += half
	w.curr[k-w.cols][1] += half
}

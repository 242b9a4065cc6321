package integrators

import (
	"math"

	"github.com/baptiste-lrx/Orbital-Trajectory-Simulator/internal/dynamo"
)

// Dormand-Prince coefficients (RK45)
var (
	a2 = 1.0 / 5.0
	a3 = 3.0 / 10.0
	a4 = 4.0 / 5.0
	a5 = 8.0 / 9.0

	b21 = 1.0 / 5.0
	b31 = 3.0 / 40.0
	b32 = 9.0 / 40.0
	b41 = 44.0 / 45.0
	b42 = -56.0 / 15.0
	b43 = 32.0 / 9.0
	b51 = 19372.0 / 6561.0
	b52 = -25360.0 / 2187.0
	b53 = 64448.0 / 6561.0
	b54 = -212.0 / 729.0
	b61 = 9017.0 / 3168.0
	b62 = -355.0 / 33.0
	b63 = 46732.0 / 5247.0
	b64 = 49.0 / 176.0
	b65 = -5103.0 / 18656.0

	c1 = 35.0 / 384.0
	c3 = 500.0 / 1113.0
	c4 = 125.0 / 192.0
	c5 = -2187.0 / 6784.0
	c6 = 11.0 / 84.0

	dc1 = c1 - 5179.0/57600.0
	dc3 = c3 - 7571.0/16695.0
	dc4 = c4 - 393.0/640.0
	dc5 = c5 - -92097.0/339200.0
	dc6 = c6 - 187.0/2100.0
	dc7 = -1.0 / 40.0
)

// errExponent is -1/(q+1) for the embedded 4th order error estimator.
const errExponent = -0.2

// RK45 is the Dormand-Prince 5(4) pair with local extrapolation: the step is
// advanced with the 5th order solution and the difference to the embedded 4th
// order one drives step-size control.
type RK45 struct {
	safety   float64
	minScale float64
	maxScale float64

	k             [7]dynamo.State
	stage, errVec dynamo.State
	scale         []float64
}

func NewRK45() *RK45 {
	return &RK45{
		safety:   0.9,
		minScale: 0.2,
		maxScale: 10.0,
	}
}

func (r *RK45) ensureScratch(n int) {
	if len(r.stage) != n {
		r.stage = make(dynamo.State, n)
		r.errVec = make(dynamo.State, n)
		r.scale = make([]float64, n)
	}
}

// Step takes one unconditional step of size dt.
func (r *RK45) Step(dyn dynamo.System, x dynamo.State, t, dt float64) dynamo.State {
	xNew, _ := r.attempt(dyn, x, t, dt, dynamo.DefaultTolerance())
	return xNew
}

func (r *RK45) StepAdaptive(dyn dynamo.System, x dynamo.State, t, dt float64, tol dynamo.Tolerance) (dynamo.State, float64, bool) {
	xNew, errNorm := r.attempt(dyn, x, t, dt, tol)

	if math.IsNaN(errNorm) || math.IsInf(errNorm, 0) {
		return xNew, dt * r.minScale, false
	}

	if errNorm >= 1 {
		scale := math.Max(r.minScale, r.safety*math.Pow(errNorm, errExponent))
		return xNew, dt * scale, false
	}

	if errNorm == 0 {
		return xNew, dt * r.maxScale, true
	}
	scale := math.Min(r.maxScale, r.safety*math.Pow(errNorm, errExponent))
	return xNew, dt * scale, true
}

// attempt returns the 5th order solution and the RMS norm of the local error
// estimate relative to tol.
func (r *RK45) attempt(dyn dynamo.System, x dynamo.State, t, dt float64, tol dynamo.Tolerance) (dynamo.State, float64) {
	n := len(x)
	r.ensureScratch(n)
	k := &r.k
	s := r.stage

	k[0] = dyn.Derive(x, t)

	for i := 0; i < n; i++ {
		s[i] = x[i] + dt*b21*k[0][i]
	}
	k[1] = dyn.Derive(s, t+a2*dt)

	for i := 0; i < n; i++ {
		s[i] = x[i] + dt*(b31*k[0][i]+b32*k[1][i])
	}
	k[2] = dyn.Derive(s, t+a3*dt)

	for i := 0; i < n; i++ {
		s[i] = x[i] + dt*(b41*k[0][i]+b42*k[1][i]+b43*k[2][i])
	}
	k[3] = dyn.Derive(s, t+a4*dt)

	for i := 0; i < n; i++ {
		s[i] = x[i] + dt*(b51*k[0][i]+b52*k[1][i]+b53*k[2][i]+b54*k[3][i])
	}
	k[4] = dyn.Derive(s, t+a5*dt)

	for i := 0; i < n; i++ {
		s[i] = x[i] + dt*(b61*k[0][i]+b62*k[1][i]+b63*k[2][i]+b64*k[3][i]+b65*k[4][i])
	}
	k[5] = dyn.Derive(s, t+dt)

	xNew := make(dynamo.State, n)
	for i := 0; i < n; i++ {
		xNew[i] = x[i] + dt*(c1*k[0][i]+c3*k[2][i]+c4*k[3][i]+c5*k[4][i]+c6*k[5][i])
	}

	k[6] = dyn.Derive(xNew, t+dt)

	for i := 0; i < n; i++ {
		r.errVec[i] = dt * (dc1*k[0][i] + dc3*k[2][i] + dc4*k[3][i] + dc5*k[4][i] + dc6*k[5][i] + dc7*k[6][i])
		r.scale[i] = tol.Scale(x[i], xNew[i])
	}

	return xNew, dynamo.RMSNorm(r.errVec, r.scale)
}

// InitialStep estimates a first step size for an integration starting at
// (t, x), following Hairer, Nørsett & Wanner, "Solving ODEs I", sec. II.4.
func (r *RK45) InitialStep(dyn dynamo.System, x dynamo.State, t float64, tol dynamo.Tolerance) float64 {
	n := len(x)
	scale := make([]float64, n)
	for i := range x {
		scale[i] = tol.Abs + math.Abs(x[i])*tol.Rel
	}

	f0 := dyn.Derive(x, t)
	d0 := dynamo.RMSNorm(x, scale)
	d1 := dynamo.RMSNorm(f0, scale)

	h0 := 1e-6
	if d0 >= 1e-5 && d1 >= 1e-5 {
		h0 = 0.01 * d0 / d1
	}

	x1 := make(dynamo.State, n)
	for i := range x {
		x1[i] = x[i] + h0*f0[i]
	}
	f1 := dyn.Derive(x1, t+h0)

	diff := make([]float64, n)
	for i := range diff {
		diff[i] = f1[i] - f0[i]
	}
	d2 := dynamo.RMSNorm(diff, scale) / h0

	var h1 float64
	if d1 <= 1e-15 && d2 <= 1e-15 {
		h1 = math.Max(1e-6, h0*1e-3)
	} else {
		h1 = math.Pow(0.01/math.Max(d1, d2), 1.0/5.0)
	}

	return math.Min(100*h0, h1)
}

// Package rootfind provides scalar root finders used to goal seek a single
// input value so that a computed figure hits a target.
package rootfind

import (
	"errors"
	"fmt"
	"math"

	"github.com/iwvelando/lease-forecast/pkg/constants"
	"github.com/iwvelando/lease-forecast/pkg/mathutil"
	"go.uber.org/zap"
)

var (
	// ErrNoSignChange is returned by bracketed methods when the objective has
	// the same sign at both bounds.
	ErrNoSignChange = errors.New("objective does not change sign over the bracket")

	// ErrNoConvergence is returned when the iteration budget is exhausted.
	ErrNoConvergence = errors.New("root finder did not converge")

	// ErrZeroDerivative is returned when a slope-based step cannot be taken.
	ErrZeroDerivative = errors.New("derivative is zero")

	// ErrNonFinite is returned when the objective or an iterate becomes NaN or
	// infinite.
	ErrNonFinite = errors.New("non-finite value encountered")
)

// Func is an objective whose root is sought.
type Func func(x float64) (float64, error)

// Options tunes a root finder. Zero values fall back to package defaults.
type Options struct {
	// XTol stops the search once successive iterates are closer than this.
	XTol float64
	// FTol stops the search once |f(x)| is at most this.
	FTol float64
	// MaxIterations bounds the number of iterations.
	MaxIterations int
	// Logger receives per-iteration debug output.
	Logger *zap.Logger
}

// Result describes a located root.
type Result struct {
	Root          float64
	Residual      float64
	Iterations    int
	FunctionCalls int
	Converged     bool
}

func (o Options) normalized() Options {
	if o.XTol <= 0 {
		o.XTol = constants.DefaultTolerance
	}
	if o.FTol <= 0 {
		o.FTol = constants.DefaultTolerance
	}
	if o.MaxIterations <= 0 {
		o.MaxIterations = constants.DefaultMaxIterations
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	return o
}

// counter wraps an objective to count evaluations and reject non-finite output.
type counter struct {
	f     Func
	calls int
}

func (c *counter) eval(x float64) (float64, error) {
	if !mathutil.IsFinite(x) {
		return 0, fmt.Errorf("%w: iterate %v", ErrNonFinite, x)
	}
	c.calls++
	fx, err := c.f(x)
	if err != nil {
		return 0, err
	}
	if !mathutil.IsFinite(fx) {
		return 0, fmt.Errorf("%w: f(%v) = %v", ErrNonFinite, x, fx)
	}
	return fx, nil
}

// Secant searches from the two starting points x0 and x1 without requiring a
// bracket.
func Secant(f Func, x0, x1 float64, opts Options) (Result, error) {
	opts = opts.normalized()
	c := &counter{f: f}

	f0, err := c.eval(x0)
	if err != nil {
		return Result{}, err
	}
	if math.Abs(f0) <= opts.FTol {
		return Result{Root: x0, Residual: f0, FunctionCalls: c.calls, Converged: true}, nil
	}
	f1, err := c.eval(x1)
	if err != nil {
		return Result{}, err
	}

	for i := 1; i <= opts.MaxIterations; i++ {
		if math.Abs(f1) <= opts.FTol {
			return Result{Root: x1, Residual: f1, Iterations: i - 1, FunctionCalls: c.calls, Converged: true}, nil
		}
		if f1 == f0 {
			return Result{}, fmt.Errorf("secant step at x=%v: %w", x1, ErrZeroDerivative)
		}

		x2 := x1 - f1*(x1-x0)/(f1-f0)
		f2, err := c.eval(x2)
		if err != nil {
			return Result{}, err
		}
		opts.Logger.Debug("secant iteration",
			zap.String("op", "rootfind.Secant"),
			zap.Int("iteration", i),
			zap.Float64("x", x2),
			zap.Float64("fx", f2),
		)

		step := math.Abs(x2 - x1)
		x0, f0 = x1, f1
		x1, f1 = x2, f2
		if step <= opts.XTol || math.Abs(f1) <= opts.FTol {
			return Result{Root: x1, Residual: f1, Iterations: i, FunctionCalls: c.calls, Converged: true}, nil
		}
	}

	return Result{Root: x1, Residual: f1, Iterations: opts.MaxIterations, FunctionCalls: c.calls},
		fmt.Errorf("secant after %d iterations: %w", opts.MaxIterations, ErrNoConvergence)
}

// Brent searches the bracket [lower, upper], which must contain a sign change,
// combining bisection, secant and inverse quadratic interpolation steps.
func Brent(f Func, lower, upper float64, opts Options) (Result, error) {
	opts = opts.normalized()
	c := &counter{f: f}

	a, b := lower, upper
	fa, err := c.eval(a)
	if err != nil {
		return Result{}, err
	}
	fb, err := c.eval(b)
	if err != nil {
		return Result{}, err
	}
	if fa == 0 {
		return Result{Root: a, FunctionCalls: c.calls, Converged: true}, nil
	}
	if fb == 0 {
		return Result{Root: b, FunctionCalls: c.calls, Converged: true}, nil
	}
	if (fa > 0) == (fb > 0) {
		return Result{}, fmt.Errorf("bracket [%v, %v] gives f=%v and f=%v: %w", lower, upper, fa, fb, ErrNoSignChange)
	}

	cx, fc := b, fb
	var d, e float64
	for i := 1; i <= opts.MaxIterations; i++ {
		if (fb > 0) == (fc > 0) {
			cx, fc = a, fa
			d = b - a
			e = d
		}
		if math.Abs(fc) < math.Abs(fb) {
			a, b, cx = b, cx, b
			fa, fb, fc = fb, fc, fb
		}

		tol1 := 2*epsilon*math.Abs(b) + 0.5*opts.XTol
		xm := 0.5 * (cx - b)
		if math.Abs(xm) <= tol1 || math.Abs(fb) <= opts.FTol {
			return Result{Root: b, Residual: fb, Iterations: i - 1, FunctionCalls: c.calls, Converged: true}, nil
		}

		if math.Abs(e) >= tol1 && math.Abs(fa) > math.Abs(fb) {
			var p, q float64
			s := fb / fa
			if a == cx {
				p = 2 * xm * s
				q = 1 - s
			} else {
				q = fa / fc
				r := fb / fc
				p = s * (2*xm*q*(q-r) - (b-a)*(r-1))
				q = (q - 1) * (r - 1) * (s - 1)
			}
			if p > 0 {
				q = -q
			}
			p = math.Abs(p)
			min1 := 3*xm*q - math.Abs(tol1*q)
			min2 := math.Abs(e * q)
			if 2*p < math.Min(min1, min2) {
				e = d
				d = p / q
			} else {
				d = xm
				e = d
			}
		} else {
			d = xm
			e = d
		}

		a, fa = b, fb
		if math.Abs(d) > tol1 {
			b += d
		} else {
			b += math.Copysign(tol1, xm)
		}
		fb, err = c.eval(b)
		if err != nil {
			return Result{}, err
		}
		opts.Logger.Debug("brent iteration",
			zap.String("op", "rootfind.Brent"),
			zap.Int("iteration", i),
			zap.Float64("x", b),
			zap.Float64("fx", fb),
		)
	}

	return Result{Root: b, Residual: fb, Iterations: opts.MaxIterations, FunctionCalls: c.calls},
		fmt.Errorf("brent after %d iterations: %w", opts.MaxIterations, ErrNoConvergence)
}

// NewtonRaphson searches from x0 using a forward-difference derivative.
func NewtonRaphson(f Func, x0 float64, opts Options) (Result, error) {
	opts = opts.normalized()
	c := &counter{f: f}

	x := x0
	for i := 1; i <= opts.MaxIterations; i++ {
		fx, err := c.eval(x)
		if err != nil {
			return Result{}, err
		}
		if math.Abs(fx) <= opts.FTol {
			return Result{Root: x, Residual: fx, Iterations: i - 1, FunctionCalls: c.calls, Converged: true}, nil
		}

		fh, err := c.eval(x + constants.DerivativeStep)
		if err != nil {
			return Result{}, err
		}
		slope := (fh - fx) / constants.DerivativeStep
		if slope == 0 {
			return Result{}, fmt.Errorf("newton step at x=%v: %w", x, ErrZeroDerivative)
		}

		step := fx / slope
		x -= step
		opts.Logger.Debug("newton iteration",
			zap.String("op", "rootfind.NewtonRaphson"),
			zap.Int("iteration", i),
			zap.Float64("x", x),
			zap.Float64("fx", fx),
			zap.Float64("slope", slope),
		)

		if math.Abs(step) <= opts.XTol {
			residual, err := c.eval(x)
			if err != nil {
				return Result{}, err
			}
			return Result{Root: x, Residual: residual, Iterations: i, FunctionCalls: c.calls, Converged: true}, nil
		}
	}

	return Result{Root: x, Iterations: opts.MaxIterations, FunctionCalls: c.calls},
		fmt.Errorf("newton after %d iterations: %w", opts.MaxIterations, ErrNoConvergence)
}

// epsilon is the float64 machine epsilon.
const epsilon = 2.220446049250313e-16

package tps

import (
	"math"
	"runtime"
	"sync"

	"gonum.org/v1/gonum/mat"
)

// homogeneous returns a copy of x with a leading column of ones prepended,
// folding translation into a single linear operator.
func homogeneous(x mat.Matrix) *mat.Dense {
	n, d := x.Dims()
	h := mat.NewDense(n, d+1, nil)
	for i := 0; i < n; i++ {
		h.Set(i, 0, 1)
		for j := 0; j < d; j++ {
			h.Set(i, j+1, x.At(i, j))
		}
	}
	return h
}

// rowDistance returns the Euclidean distance between two coordinate rows.
func rowDistance(a, b []float64) float64 {
	var sum float64
	for j := range a {
		d := a[j] - b[j]
		sum += d * d
	}
	return math.Sqrt(sum)
}

// kernelMatrix assembles the K×K thin-plate kernel over the control points:
// Φ[i,j] = basis(‖x_i − x_j‖). The matrix is symmetric with a zero diagonal,
// so only the upper triangle is evaluated and mirrored.
func kernelMatrix(x *mat.Dense) *mat.Dense {
	k, _ := x.Dims()
	phi := mat.NewDense(k, k, nil)
	parallelRows(k, func(lo, hi int) {
		for i := lo; i < hi; i++ {
			ri := x.RawRowView(i)
			for j := i + 1; j < k; j++ {
				v := basis(rowDistance(ri, x.RawRowView(j)))
				phi.Set(i, j, v)
				phi.Set(j, i, v)
			}
		}
	})
	return phi
}

// crossKernel assembles the M×K kernel between query and control points:
// U[i,k] = basis(‖q_i − x_k‖). Rows are independent and filled in parallel.
func crossKernel(q, x *mat.Dense) *mat.Dense {
	m, _ := q.Dims()
	k, _ := x.Dims()
	u := mat.NewDense(m, k, nil)
	parallelRows(m, func(lo, hi int) {
		for i := lo; i < hi; i++ {
			qi := q.RawRowView(i)
			ui := u.RawRowView(i)
			for j := 0; j < k; j++ {
				ui[j] = basis(rowDistance(qi, x.RawRowView(j)))
			}
		}
	})
	return u
}

// parallelRows splits [0,n) into contiguous chunks, one per worker. Each
// chunk writes only its own rows, so no synchronization beyond the final
// wait is needed.
func parallelRows(n int, fn func(lo, hi int)) {
	workers := runtime.NumCPU()
	if workers > n {
		workers = n
	}
	if workers <= 1 {
		fn(0, n)
		return
	}
	chunk := (n + workers - 1) / workers
	var wg sync.WaitGroup
	for lo := 0; lo < n; lo += chunk {
		hi := lo + chunk
		if hi > n {
			hi = n
		}
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			fn(lo, hi)
		}(lo, hi)
	}
	wg.Wait()
}

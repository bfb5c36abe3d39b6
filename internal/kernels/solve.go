package kernels

// Triangular solves. Row i depends on every previously solved row, so the
// kernel is a single thread walking n ordered steps: forward substitution
// for the lower triangle, backward for the upper, with the transpose variant
// swapping traversal direction and index roles. This is a scalability
// ceiling, not a defect; parallelizing would need a blocked or wavefront
// restructuring.
//
// A zero non-unit diagonal is not trapped: the division propagates Inf/NaN
// exactly as the reference semantics require.

// trsvSrc solves op(A)*x = b in place for a dense triangular A.
const trsvSrc = `
@group(0) @binding(0) var<storage, read> a: array<f32>;
@group(0) @binding(1) var<storage, read_write> x: array<f32>;

struct Params {
    n: u32,
    lda: u32,
    upper: u32,
    trans: u32,
    unit: u32,
    incx: i32,
    offx: i32,
}
@group(0) @binding(2) var<uniform> params: Params;

@compute @workgroup_size(1)
fn main() {
    let n = i32(params.n);
    let forward = (params.upper == 1u) == (params.trans == 1u);
    for (var step = 0; step < n; step = step + 1) {
        var i = step;
        if (!forward) {
            i = n - 1 - step;
        }
        var s = x[u32(params.offx + i * params.incx)];
        var lo = 0;
        var hi = i - 1;
        if (!forward) {
            lo = i + 1;
            hi = n - 1;
        }
        for (var j = lo; j <= hi; j = j + 1) {
            var aij: f32;
            if (params.trans == 0u) {
                aij = a[u32(i) + u32(j) * params.lda];
            } else {
                aij = a[u32(j) + u32(i) * params.lda];
            }
            s = s - aij * x[u32(params.offx + j * params.incx)];
        }
        if (params.unit == 0u) {
            s = s / a[u32(i) + u32(i) * params.lda];
        }
        x[u32(params.offx + i * params.incx)] = s;
    }
}
`

// tbsvSrc solves op(A)*x = b in place for a triangular banded A in compact
// storage with k off-diagonals.
const tbsvSrc = `
@group(0) @binding(0) var<storage, read> a: array<f32>;
@group(0) @binding(1) var<storage, read_write> x: array<f32>;

struct Params {
    n: u32,
    k: u32,
    lda: u32,
    upper: u32,
    trans: u32,
    unit: u32,
    incx: i32,
    offx: i32,
}
@group(0) @binding(2) var<uniform> params: Params;

@compute @workgroup_size(1)
fn main() {
    let n = i32(params.n);
    let k = i32(params.k);
    let forward = (params.upper == 1u) == (params.trans == 1u);
    for (var step = 0; step < n; step = step + 1) {
        var i = step;
        if (!forward) {
            i = n - 1 - step;
        }
        var s = x[u32(params.offx + i * params.incx)];
        var lo: i32;
        var hi: i32;
        if (forward) {
            lo = max(i - k, 0);
            hi = i - 1;
        } else {
            lo = i + 1;
            hi = min(i + k, n - 1);
        }
        for (var j = lo; j <= hi; j = j + 1) {
            var aij: f32;
            if (params.trans == 0u) {
                if (params.upper == 1u) {
                    aij = a[u32(k + i - j) + u32(j) * params.lda];
                } else {
                    aij = a[u32(i - j) + u32(j) * params.lda];
                }
            } else {
                if (params.upper == 1u) {
                    aij = a[u32(k + j - i) + u32(i) * params.lda];
                } else {
                    aij = a[u32(j - i) + u32(i) * params.lda];
                }
            }
            s = s - aij * x[u32(params.offx + j * params.incx)];
        }
        if (params.unit == 0u) {
            var diag: f32;
            if (params.upper == 1u) {
                diag = a[u32(k) + u32(i) * params.lda];
            } else {
                diag = a[u32(i) * params.lda];
            }
            s = s / diag;
        }
        x[u32(params.offx + i * params.incx)] = s;
    }
}
`

// tpsvSrc solves op(A)*x = b in place for a packed triangular A.
const tpsvSrc = `
@group(0) @binding(0) var<storage, read> ap: array<f32>;
@group(0) @binding(1) var<storage, read_write> x: array<f32>;

struct Params {
    n: u32,
    upper: u32,
    trans: u32,
    unit: u32,
    incx: i32,
    offx: i32,
}
@group(0) @binding(2) var<uniform> params: Params;

fn packed(row: u32, col: u32) -> u32 {
    if (params.upper == 1u) {
        return col * (col + 1u) / 2u + row;
    }
    return col * params.n - col * (col - 1u) / 2u + (row - col);
}

@compute @workgroup_size(1)
fn main() {
    let n = i32(params.n);
    let forward = (params.upper == 1u) == (params.trans == 1u);
    for (var step = 0; step < n; step = step + 1) {
        var i = step;
        if (!forward) {
            i = n - 1 - step;
        }
        var s = x[u32(params.offx + i * params.incx)];
        var lo = 0;
        var hi = i - 1;
        if (!forward) {
            lo = i + 1;
            hi = n - 1;
        }
        for (var j = lo; j <= hi; j = j + 1) {
            var aij: f32;
            if (params.trans == 0u) {
                aij = ap[packed(u32(i), u32(j))];
            } else {
                aij = ap[packed(u32(j), u32(i))];
            }
            s = s - aij * x[u32(params.offx + j * params.incx)];
        }
        if (params.unit == 0u) {
            s = s / ap[packed(u32(i), u32(i))];
        }
        x[u32(params.offx + i * params.incx)] = s;
    }
}
`

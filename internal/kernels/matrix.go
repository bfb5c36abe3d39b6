package kernels

// Matrix kernels. Matrix-vector products use one thread per output element,
// iterating the reduced dimension and resolving dense, banded or packed
// storage indices in closed form. Rank updates use a 2D tile per workgroup
// with one thread per (row, col); writes are restricted to the declared
// triangle or band, every other element is untouched.
//
// Banded storage: element (i,j) lives at (ku + i - j) + j*lda.
// Packed storage: upper (i,j) at j*(j+1)/2 + i, lower at
// j*n - j*(j-1)/2 + (i - j).

// gemvSrc computes y = alpha*op(A)*x + beta*y for a dense column-major A.
const gemvSrc = `
@group(0) @binding(0) var<storage, read> a: array<f32>;
@group(0) @binding(1) var<storage, read> x: array<f32>;
@group(0) @binding(2) var<storage, read_write> y: array<f32>;

struct Params {
    m: u32,
    n: u32,
    lda: u32,
    trans: u32,
    alpha: f32,
    beta: f32,
    incx: i32,
    offx: i32,
    incy: i32,
    offy: i32,
}
@group(0) @binding(3) var<uniform> params: Params;

@compute @workgroup_size(256)
fn main(@builtin(global_invocation_id) global_id: vec3<u32>) {
    let i = global_id.x;
    var outlen = params.m;
    if (params.trans == 1u) {
        outlen = params.n;
    }
    if (i >= outlen) {
        return;
    }
    var sum = 0.0;
    if (params.trans == 0u) {
        for (var j = 0u; j < params.n; j = j + 1u) {
            sum = sum + a[i + j * params.lda] * x[u32(params.offx + i32(j) * params.incx)];
        }
    } else {
        for (var j = 0u; j < params.m; j = j + 1u) {
            sum = sum + a[j + i * params.lda] * x[u32(params.offx + i32(j) * params.incx)];
        }
    }
    let ay = u32(params.offy + i32(i) * params.incy);
    if (params.beta == 0.0) {
        y[ay] = params.alpha * sum;
    } else {
        y[ay] = params.alpha * sum + params.beta * y[ay];
    }
}
`

// gbmvSrc computes y = alpha*op(A)*x + beta*y for a banded A with kl
// sub-diagonals and ku super-diagonals in compact storage.
const gbmvSrc = `
@group(0) @binding(0) var<storage, read> a: array<f32>;
@group(0) @binding(1) var<storage, read> x: array<f32>;
@group(0) @binding(2) var<storage, read_write> y: array<f32>;

struct Params {
    m: u32,
    n: u32,
    kl: u32,
    ku: u32,
    lda: u32,
    trans: u32,
    alpha: f32,
    beta: f32,
    incx: i32,
    offx: i32,
    incy: i32,
    offy: i32,
}
@group(0) @binding(3) var<uniform> params: Params;

@compute @workgroup_size(256)
fn main(@builtin(global_invocation_id) global_id: vec3<u32>) {
    let gid = global_id.x;
    var outlen = params.m;
    if (params.trans == 1u) {
        outlen = params.n;
    }
    if (gid >= outlen) {
        return;
    }
    let ku = i32(params.ku);
    let kl = i32(params.kl);
    var sum = 0.0;
    if (params.trans == 0u) {
        let i = i32(gid);
        let j0 = max(i - kl, 0);
        let j1 = min(i + ku, i32(params.n) - 1);
        for (var j = j0; j <= j1; j = j + 1) {
            sum = sum + a[u32(ku + i - j) + u32(j) * params.lda]
                * x[u32(params.offx + j * params.incx)];
        }
    } else {
        let j = i32(gid);
        let i0 = max(j - ku, 0);
        let i1 = min(j + kl, i32(params.m) - 1);
        for (var i = i0; i <= i1; i = i + 1) {
            sum = sum + a[u32(ku + i - j) + u32(j) * params.lda]
                * x[u32(params.offx + i * params.incx)];
        }
    }
    let ay = u32(params.offy + i32(gid) * params.incy);
    if (params.beta == 0.0) {
        y[ay] = params.alpha * sum;
    } else {
        y[ay] = params.alpha * sum + params.beta * y[ay];
    }
}
`

// symvSrc computes y = alpha*A*x + beta*y for a symmetric A with only the
// uplo half referenced; the unstored half reads A[j,i].
const symvSrc = `
@group(0) @binding(0) var<storage, read> a: array<f32>;
@group(0) @binding(1) var<storage, read> x: array<f32>;
@group(0) @binding(2) var<storage, read_write> y: array<f32>;

struct Params {
    n: u32,
    lda: u32,
    upper: u32,
    alpha: f32,
    beta: f32,
    incx: i32,
    offx: i32,
    incy: i32,
    offy: i32,
}
@group(0) @binding(3) var<uniform> params: Params;

@compute @workgroup_size(256)
fn main(@builtin(global_invocation_id) global_id: vec3<u32>) {
    let i = global_id.x;
    if (i >= params.n) {
        return;
    }
    var sum = 0.0;
    for (var j = 0u; j < params.n; j = j + 1u) {
        var v: f32;
        if ((params.upper == 1u && i <= j) || (params.upper == 0u && i >= j)) {
            v = a[i + j * params.lda];
        } else {
            v = a[j + i * params.lda];
        }
        sum = sum + v * x[u32(params.offx + i32(j) * params.incx)];
    }
    let ay = u32(params.offy + i32(i) * params.incy);
    if (params.beta == 0.0) {
        y[ay] = params.alpha * sum;
    } else {
        y[ay] = params.alpha * sum + params.beta * y[ay];
    }
}
`

// sbmvSrc computes y = alpha*A*x + beta*y for a symmetric banded A with k
// diagonals beside the main one, in compact storage.
const sbmvSrc = `
@group(0) @binding(0) var<storage, read> a: array<f32>;
@group(0) @binding(1) var<storage, read> x: array<f32>;
@group(0) @binding(2) var<storage, read_write> y: array<f32>;

struct Params {
    n: u32,
    k: u32,
    lda: u32,
    upper: u32,
    alpha: f32,
    beta: f32,
    incx: i32,
    offx: i32,
    incy: i32,
    offy: i32,
}
@group(0) @binding(3) var<uniform> params: Params;

@compute @workgroup_size(256)
fn main(@builtin(global_invocation_id) global_id: vec3<u32>) {
    let gid = global_id.x;
    if (gid >= params.n) {
        return;
    }
    let i = i32(gid);
    let k = i32(params.k);
    let j0 = max(i - k, 0);
    let j1 = min(i + k, i32(params.n) - 1);
    var sum = 0.0;
    for (var j = j0; j <= j1; j = j + 1) {
        var v: f32;
        if (params.upper == 1u) {
            if (j >= i) {
                v = a[u32(k + i - j) + u32(j) * params.lda];
            } else {
                v = a[u32(k + j - i) + u32(i) * params.lda];
            }
        } else {
            if (j <= i) {
                v = a[u32(i - j) + u32(j) * params.lda];
            } else {
                v = a[u32(j - i) + u32(i) * params.lda];
            }
        }
        sum = sum + v * x[u32(params.offx + j * params.incx)];
    }
    let ay = u32(params.offy + i * params.incy);
    if (params.beta == 0.0) {
        y[ay] = params.alpha * sum;
    } else {
        y[ay] = params.alpha * sum + params.beta * y[ay];
    }
}
`

// spmvSrc computes y = alpha*A*x + beta*y for a packed symmetric A.
const spmvSrc = `
@group(0) @binding(0) var<storage, read> ap: array<f32>;
@group(0) @binding(1) var<storage, read> x: array<f32>;
@group(0) @binding(2) var<storage, read_write> y: array<f32>;

struct Params {
    n: u32,
    upper: u32,
    alpha: f32,
    beta: f32,
    incx: i32,
    offx: i32,
    incy: i32,
    offy: i32,
}
@group(0) @binding(3) var<uniform> params: Params;

@compute @workgroup_size(256)
fn main(@builtin(global_invocation_id) global_id: vec3<u32>) {
    let i = global_id.x;
    if (i >= params.n) {
        return;
    }
    let n = params.n;
    var sum = 0.0;
    for (var j = 0u; j < n; j = j + 1u) {
        var idx: u32;
        if (params.upper == 1u) {
            if (i <= j) {
                idx = j * (j + 1u) / 2u + i;
            } else {
                idx = i * (i + 1u) / 2u + j;
            }
        } else {
            if (i >= j) {
                idx = j * n - j * (j - 1u) / 2u + (i - j);
            } else {
                idx = i * n - i * (i - 1u) / 2u + (j - i);
            }
        }
        sum = sum + ap[idx] * x[u32(params.offx + i32(j) * params.incx)];
    }
    let ay = u32(params.offy + i32(i) * params.incy);
    if (params.beta == 0.0) {
        y[ay] = params.alpha * sum;
    } else {
        y[ay] = params.alpha * sum + params.beta * y[ay];
    }
}
`

// trmvSrc computes x = op(A)*x for a dense triangular A. xin is a snapshot
// copy of x so each thread reads unmutated inputs; the unit flag elides the
// stored diagonal.
const trmvSrc = `
@group(0) @binding(0) var<storage, read> a: array<f32>;
@group(0) @binding(1) var<storage, read> xin: array<f32>;
@group(0) @binding(2) var<storage, read_write> xout: array<f32>;

struct Params {
    n: u32,
    lda: u32,
    upper: u32,
    trans: u32,
    unit: u32,
    incx: i32,
    offx: i32,
}
@group(0) @binding(3) var<uniform> params: Params;

@compute @workgroup_size(256)
fn main(@builtin(global_invocation_id) global_id: vec3<u32>) {
    let i = global_id.x;
    if (i >= params.n) {
        return;
    }
    var lo = 0u;
    var hi = params.n - 1u;
    if ((params.upper == 1u) == (params.trans == 0u)) {
        lo = i;
    } else {
        hi = i;
    }
    var sum = 0.0;
    for (var j = lo; j <= hi; j = j + 1u) {
        var coef: f32;
        if (j == i && params.unit == 1u) {
            coef = 1.0;
        } else if (params.trans == 0u) {
            coef = a[i + j * params.lda];
        } else {
            coef = a[j + i * params.lda];
        }
        sum = sum + coef * xin[u32(params.offx + i32(j) * params.incx)];
    }
    xout[u32(params.offx + i32(i) * params.incx)] = sum;
}
`

// tbmvSrc computes x = op(A)*x for a triangular banded A in compact storage.
const tbmvSrc = `
@group(0) @binding(0) var<storage, read> a: array<f32>;
@group(0) @binding(1) var<storage, read> xin: array<f32>;
@group(0) @binding(2) var<storage, read_write> xout: array<f32>;

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
@group(0) @binding(3) var<uniform> params: Params;

@compute @workgroup_size(256)
fn main(@builtin(global_invocation_id) global_id: vec3<u32>) {
    let gid = global_id.x;
    if (gid >= params.n) {
        return;
    }
    let i = i32(gid);
    let k = i32(params.k);
    var lo: i32;
    var hi: i32;
    if ((params.upper == 1u) == (params.trans == 0u)) {
        lo = i;
        hi = min(i + k, i32(params.n) - 1);
    } else {
        lo = max(i - k, 0);
        hi = i;
    }
    var sum = 0.0;
    for (var j = lo; j <= hi; j = j + 1) {
        var coef: f32;
        if (j == i && params.unit == 1u) {
            coef = 1.0;
        } else if (params.trans == 0u) {
            if (params.upper == 1u) {
                coef = a[u32(k + i - j) + u32(j) * params.lda];
            } else {
                coef = a[u32(i - j) + u32(j) * params.lda];
            }
        } else {
            if (params.upper == 1u) {
                coef = a[u32(k + j - i) + u32(i) * params.lda];
            } else {
                coef = a[u32(j - i) + u32(i) * params.lda];
            }
        }
        sum = sum + coef * xin[u32(params.offx + j * params.incx)];
    }
    xout[u32(params.offx + i * params.incx)] = sum;
}
`

// tpmvSrc computes x = op(A)*x for a packed triangular A.
const tpmvSrc = `
@group(0) @binding(0) var<storage, read> ap: array<f32>;
@group(0) @binding(1) var<storage, read> xin: array<f32>;
@group(0) @binding(2) var<storage, read_write> xout: array<f32>;

struct Params {
    n: u32,
    upper: u32,
    trans: u32,
    unit: u32,
    incx: i32,
    offx: i32,
}
@group(0) @binding(3) var<uniform> params: Params;

@compute @workgroup_size(256)
fn main(@builtin(global_invocation_id) global_id: vec3<u32>) {
    let i = global_id.x;
    if (i >= params.n) {
        return;
    }
    let n = params.n;
    var lo = 0u;
    var hi = n - 1u;
    if ((params.upper == 1u) == (params.trans == 0u)) {
        lo = i;
    } else {
        hi = i;
    }
    var sum = 0.0;
    for (var j = lo; j <= hi; j = j + 1u) {
        var coef: f32;
        if (j == i && params.unit == 1u) {
            coef = 1.0;
        } else if (params.trans == 0u) {
            if (params.upper == 1u) {
                coef = ap[j * (j + 1u) / 2u + i];
            } else {
                coef = ap[j * n - j * (j - 1u) / 2u + (i - j)];
            }
        } else {
            if (params.upper == 1u) {
                coef = ap[i * (i + 1u) / 2u + j];
            } else {
                coef = ap[i * n - i * (i - 1u) / 2u + (j - i)];
            }
        }
        sum = sum + coef * xin[u32(params.offx + i32(j) * params.incx)];
    }
    xout[u32(params.offx + i32(i) * params.incx)] = sum;
}
`

// gerSrc applies the rank-1 update A = A + alpha*x*y^T.
const gerSrc = `
@group(0) @binding(0) var<storage, read_write> a: array<f32>;
@group(0) @binding(1) var<storage, read> x: array<f32>;
@group(0) @binding(2) var<storage, read> y: array<f32>;

struct Params {
    m: u32,
    n: u32,
    lda: u32,
    alpha: f32,
    incx: i32,
    offx: i32,
    incy: i32,
    offy: i32,
}
@group(0) @binding(3) var<uniform> params: Params;

@compute @workgroup_size(16, 16)
fn main(@builtin(global_invocation_id) global_id: vec3<u32>) {
    let row = global_id.y;
    let col = global_id.x;
    if (row >= params.m || col >= params.n) {
        return;
    }
    let xv = x[u32(params.offx + i32(row) * params.incx)];
    let yv = y[u32(params.offy + i32(col) * params.incy)];
    let idx = row + col * params.lda;
    a[idx] = a[idx] + params.alpha * xv * yv;
}
`

// syrSrc applies the symmetric rank-1 update A = A + alpha*x*x^T, writing
// only the declared triangle.
const syrSrc = `
@group(0) @binding(0) var<storage, read_write> a: array<f32>;
@group(0) @binding(1) var<storage, read> x: array<f32>;

struct Params {
    n: u32,
    lda: u32,
    upper: u32,
    alpha: f32,
    incx: i32,
    offx: i32,
}
@group(0) @binding(2) var<uniform> params: Params;

@compute @workgroup_size(16, 16)
fn main(@builtin(global_invocation_id) global_id: vec3<u32>) {
    let row = global_id.y;
    let col = global_id.x;
    if (row >= params.n || col >= params.n) {
        return;
    }
    if ((params.upper == 1u && row > col) || (params.upper == 0u && row < col)) {
        return;
    }
    let xr = x[u32(params.offx + i32(row) * params.incx)];
    let xc = x[u32(params.offx + i32(col) * params.incx)];
    let idx = row + col * params.lda;
    a[idx] = a[idx] + params.alpha * xr * xc;
}
`

// syr2Src applies the symmetric rank-2 update A = A + alpha*(x*y^T + y*x^T)
// inside the declared triangle.
const syr2Src = `
@group(0) @binding(0) var<storage, read_write> a: array<f32>;
@group(0) @binding(1) var<storage, read> x: array<f32>;
@group(0) @binding(2) var<storage, read> y: array<f32>;

struct Params {
    n: u32,
    lda: u32,
    upper: u32,
    alpha: f32,
    incx: i32,
    offx: i32,
    incy: i32,
    offy: i32,
}
@group(0) @binding(3) var<uniform> params: Params;

@compute @workgroup_size(16, 16)
fn main(@builtin(global_invocation_id) global_id: vec3<u32>) {
    let row = global_id.y;
    let col = global_id.x;
    if (row >= params.n || col >= params.n) {
        return;
    }
    if ((params.upper == 1u && row > col) || (params.upper == 0u && row < col)) {
        return;
    }
    let xr = x[u32(params.offx + i32(row) * params.incx)];
    let xc = x[u32(params.offx + i32(col) * params.incx)];
    let yr = y[u32(params.offy + i32(row) * params.incy)];
    let yc = y[u32(params.offy + i32(col) * params.incy)];
    let idx = row + col * params.lda;
    a[idx] = a[idx] + params.alpha * (xr * yc + yr * xc);
}
`

// sprSrc applies the packed symmetric rank-1 update.
const sprSrc = `
@group(0) @binding(0) var<storage, read_write> ap: array<f32>;
@group(0) @binding(1) var<storage, read> x: array<f32>;

struct Params {
    n: u32,
    upper: u32,
    alpha: f32,
    incx: i32,
    offx: i32,
}
@group(0) @binding(2) var<uniform> params: Params;

@compute @workgroup_size(16, 16)
fn main(@builtin(global_invocation_id) global_id: vec3<u32>) {
    let row = global_id.y;
    let col = global_id.x;
    if (row >= params.n || col >= params.n) {
        return;
    }
    if ((params.upper == 1u && row > col) || (params.upper == 0u && row < col)) {
        return;
    }
    var idx: u32;
    if (params.upper == 1u) {
        idx = col * (col + 1u) / 2u + row;
    } else {
        idx = col * params.n - col * (col - 1u) / 2u + (row - col);
    }
    let xr = x[u32(params.offx + i32(row) * params.incx)];
    let xc = x[u32(params.offx + i32(col) * params.incx)];
    ap[idx] = ap[idx] + params.alpha * xr * xc;
}
`

// spr2Src applies the packed symmetric rank-2 update.
const spr2Src = `
@group(0) @binding(0) var<storage, read_write> ap: array<f32>;
@group(0) @binding(1) var<storage, read> x: array<f32>;
@group(0) @binding(2) var<storage, read> y: array<f32>;

struct Params {
    n: u32,
    upper: u32,
    alpha: f32,
    incx: i32,
    offx: i32,
    incy: i32,
    offy: i32,
}
@group(0) @binding(3) var<uniform> params: Params;

@compute @workgroup_size(16, 16)
fn main(@builtin(global_invocation_id) global_id: vec3<u32>) {
    let row = global_id.y;
    let col = global_id.x;
    if (row >= params.n || col >= params.n) {
        return;
    }
    if ((params.upper == 1u && row > col) || (params.upper == 0u && row < col)) {
        return;
    }
    var idx: u32;
    if (params.upper == 1u) {
        idx = col * (col + 1u) / 2u + row;
    } else {
        idx = col * params.n - col * (col - 1u) / 2u + (row - col);
    }
    let xr = x[u32(params.offx + i32(row) * params.incx)];
    let xc = x[u32(params.offx + i32(col) * params.incx)];
    let yr = y[u32(params.offy + i32(row) * params.incy)];
    let yc = y[u32(params.offy + i32(col) * params.incy)];
    ap[idx] = ap[idx] + params.alpha * (xr * yc + yr * xc);
}
`

package kernels

// Per-element vector kernels: one thread per logical position, each thread
// resolving its strided address independently. offx/offy hold the start
// offset for negative strides ((n-1)*|inc|), so logical element i is always
// buf[off + i*inc].

// scalSrc scales x by alpha in place.
const scalSrc = `
@group(0) @binding(0) var<storage, read_write> x: array<f32>;

struct Params {
    n: u32,
    incx: i32,
    offx: i32,
    alpha: f32,
}
@group(0) @binding(1) var<uniform> params: Params;

@compute @workgroup_size(256)
fn main(@builtin(global_invocation_id) global_id: vec3<u32>) {
    let i = global_id.x;
    if (i < params.n) {
        let a = u32(params.offx + i32(i) * params.incx);
        x[a] = params.alpha * x[a];
    }
}
`

// axpySrc computes y = alpha*x + y.
const axpySrc = `
@group(0) @binding(0) var<storage, read> x: array<f32>;
@group(0) @binding(1) var<storage, read_write> y: array<f32>;

struct Params {
    n: u32,
    incx: i32,
    offx: i32,
    incy: i32,
    offy: i32,
    alpha: f32,
}
@group(0) @binding(2) var<uniform> params: Params;

@compute @workgroup_size(256)
fn main(@builtin(global_invocation_id) global_id: vec3<u32>) {
    let i = global_id.x;
    if (i < params.n) {
        let ax = u32(params.offx + i32(i) * params.incx);
        let ay = u32(params.offy + i32(i) * params.incy);
        y[ay] = params.alpha * x[ax] + y[ay];
    }
}
`

// copySrc copies x into y.
const copySrc = `
@group(0) @binding(0) var<storage, read> x: array<f32>;
@group(0) @binding(1) var<storage, read_write> y: array<f32>;

struct Params {
    n: u32,
    incx: i32,
    offx: i32,
    incy: i32,
    offy: i32,
}
@group(0) @binding(2) var<uniform> params: Params;

@compute @workgroup_size(256)
fn main(@builtin(global_invocation_id) global_id: vec3<u32>) {
    let i = global_id.x;
    if (i < params.n) {
        let ax = u32(params.offx + i32(i) * params.incx);
        let ay = u32(params.offy + i32(i) * params.incy);
        y[ay] = x[ax];
    }
}
`

// swapSrc exchanges x and y.
const swapSrc = `
@group(0) @binding(0) var<storage, read_write> x: array<f32>;
@group(0) @binding(1) var<storage, read_write> y: array<f32>;

struct Params {
    n: u32,
    incx: i32,
    offx: i32,
    incy: i32,
    offy: i32,
}
@group(0) @binding(2) var<uniform> params: Params;

@compute @workgroup_size(256)
fn main(@builtin(global_invocation_id) global_id: vec3<u32>) {
    let i = global_id.x;
    if (i < params.n) {
        let ax = u32(params.offx + i32(i) * params.incx);
        let ay = u32(params.offy + i32(i) * params.incy);
        let tmp = x[ax];
        x[ax] = y[ay];
        y[ay] = tmp;
    }
}
`

// rotSrc applies the plane rotation (c, s) to the pair (x, y).
const rotSrc = `
@group(0) @binding(0) var<storage, read_write> x: array<f32>;
@group(0) @binding(1) var<storage, read_write> y: array<f32>;

struct Params {
    n: u32,
    incx: i32,
    offx: i32,
    incy: i32,
    offy: i32,
    c: f32,
    s: f32,
}
@group(0) @binding(2) var<uniform> params: Params;

@compute @workgroup_size(256)
fn main(@builtin(global_invocation_id) global_id: vec3<u32>) {
    let i = global_id.x;
    if (i < params.n) {
        let ax = u32(params.offx + i32(i) * params.incx);
        let ay = u32(params.offy + i32(i) * params.incy);
        let xv = x[ax];
        let yv = y[ay];
        x[ax] = params.c * xv + params.s * yv;
        y[ay] = params.c * yv - params.s * xv;
    }
}
`

// rotmSrc applies the modified rotation matrix H. The host expands the flag
// encoding into a full 2x2 (implicit unit and -1 entries filled in), so the
// kernel always applies the general form.
const rotmSrc = `
@group(0) @binding(0) var<storage, read_write> x: array<f32>;
@group(0) @binding(1) var<storage, read_write> y: array<f32>;

struct Params {
    n: u32,
    incx: i32,
    offx: i32,
    incy: i32,
    offy: i32,
    h11: f32,
    h21: f32,
    h12: f32,
    h22: f32,
}
@group(0) @binding(2) var<uniform> params: Params;

@compute @workgroup_size(256)
fn main(@builtin(global_invocation_id) global_id: vec3<u32>) {
    let i = global_id.x;
    if (i < params.n) {
        let ax = u32(params.offx + i32(i) * params.incx);
        let ay = u32(params.offy + i32(i) * params.incy);
        let xv = x[ax];
        let yv = y[ay];
        x[ax] = params.h11 * xv + params.h12 * yv;
        y[ay] = params.h21 * xv + params.h22 * yv;
    }
}
`

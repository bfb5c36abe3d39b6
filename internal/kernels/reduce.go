package kernels

// Two-stage reduction kernels. Stage 1 partitions the n logical elements
// across workgroups; each thread folds a WIN-element window, the workgroup
// tree-reduces in shared memory and writes one partial. Stage 2 runs in the
// same command batch and folds the partials into a single element, looping
// when the partial count exceeds the workgroup width.
//
// Accumulation order is workgroup-local tree order, then cross-workgroup
// tree order, so low bits may differ from a sequential scan.

// asumPartialSrc computes per-workgroup partials of sum(|x_i|).
const asumPartialSrc = `
@group(0) @binding(0) var<storage, read> x: array<f32>;
@group(0) @binding(1) var<storage, read_write> partials: array<f32>;

struct Params {
    n: u32,
    incx: i32,
    offx: i32,
    nwg: u32,
}
@group(0) @binding(2) var<uniform> params: Params;

var<workgroup> sdata: array<f32, 256>;

@compute @workgroup_size(256)
fn main(@builtin(workgroup_id) wg: vec3<u32>, @builtin(local_invocation_id) local: vec3<u32>) {
    var i = wg.x * 256u + local.x;
    let inc = 256u * params.nwg;
    var sum = 0.0;
    for (var j = 0u; j < 4u && i < params.n; j = j + 1u) {
        sum = sum + abs(x[u32(params.offx + i32(i) * params.incx)]);
        i = i + inc;
    }
    sdata[local.x] = sum;
    workgroupBarrier();
    for (var s = 128u; s > 0u; s = s >> 1u) {
        if (local.x < s) {
            sdata[local.x] = sdata[local.x] + sdata[local.x + s];
        }
        workgroupBarrier();
    }
    if (local.x == 0u) {
        partials[wg.x] = sdata[0];
    }
}
`

// sumsqPartialSrc computes per-workgroup partials of sum(x_i^2).
// The terminal square root is applied on the host after readback.
const sumsqPartialSrc = `
@group(0) @binding(0) var<storage, read> x: array<f32>;
@group(0) @binding(1) var<storage, read_write> partials: array<f32>;

struct Params {
    n: u32,
    incx: i32,
    offx: i32,
    nwg: u32,
}
@group(0) @binding(2) var<uniform> params: Params;

var<workgroup> sdata: array<f32, 256>;

@compute @workgroup_size(256)
fn main(@builtin(workgroup_id) wg: vec3<u32>, @builtin(local_invocation_id) local: vec3<u32>) {
    var i = wg.x * 256u + local.x;
    let inc = 256u * params.nwg;
    var sum = 0.0;
    for (var j = 0u; j < 4u && i < params.n; j = j + 1u) {
        let v = x[u32(params.offx + i32(i) * params.incx)];
        sum = sum + v * v;
        i = i + inc;
    }
    sdata[local.x] = sum;
    workgroupBarrier();
    for (var s = 128u; s > 0u; s = s >> 1u) {
        if (local.x < s) {
            sdata[local.x] = sdata[local.x] + sdata[local.x + s];
        }
        workgroupBarrier();
    }
    if (local.x == 0u) {
        partials[wg.x] = sdata[0];
    }
}
`

// dotPartialSrc computes per-workgroup partials of sum(x_i * y_i).
const dotPartialSrc = `
@group(0) @binding(0) var<storage, read> x: array<f32>;
@group(0) @binding(1) var<storage, read> y: array<f32>;
@group(0) @binding(2) var<storage, read_write> partials: array<f32>;

struct Params {
    n: u32,
    incx: i32,
    offx: i32,
    incy: i32,
    offy: i32,
    nwg: u32,
}
@group(0) @binding(3) var<uniform> params: Params;

var<workgroup> sdata: array<f32, 256>;

@compute @workgroup_size(256)
fn main(@builtin(workgroup_id) wg: vec3<u32>, @builtin(local_invocation_id) local: vec3<u32>) {
    var i = wg.x * 256u + local.x;
    let inc = 256u * params.nwg;
    var sum = 0.0;
    for (var j = 0u; j < 4u && i < params.n; j = j + 1u) {
        let xv = x[u32(params.offx + i32(i) * params.incx)];
        let yv = y[u32(params.offy + i32(i) * params.incy)];
        sum = sum + xv * yv;
        i = i + inc;
    }
    sdata[local.x] = sum;
    workgroupBarrier();
    for (var s = 128u; s > 0u; s = s >> 1u) {
        if (local.x < s) {
            sdata[local.x] = sdata[local.x] + sdata[local.x + s];
        }
        workgroupBarrier();
    }
    if (local.x == 0u) {
        partials[wg.x] = sdata[0];
    }
}
`

// sumFinalSrc folds stage-1 partials into result[0], looping when the
// partial count exceeds the workgroup width.
const sumFinalSrc = `
@group(0) @binding(0) var<storage, read> partials: array<f32>;
@group(0) @binding(1) var<storage, read_write> result: array<f32>;

struct Params {
    count: u32,
}
@group(0) @binding(2) var<uniform> params: Params;

var<workgroup> sdata: array<f32, 256>;

@compute @workgroup_size(256)
fn main(@builtin(local_invocation_id) local: vec3<u32>) {
    var sum = 0.0;
    for (var i = local.x; i < params.count; i = i + 256u) {
        sum = sum + partials[i];
    }
    sdata[local.x] = sum;
    workgroupBarrier();
    for (var s = 128u; s > 0u; s = s >> 1u) {
        if (local.x < s) {
            sdata[local.x] = sdata[local.x] + sdata[local.x + s];
        }
        workgroupBarrier();
    }
    if (local.x == 0u) {
        result[0] = sdata[0];
    }
}
`

// argextPartialSrc computes per-workgroup (|value|, 1-based index) extremum
// pairs. minimize selects min-abs search, otherwise max-abs. A candidate
// replaces the current best iff it is strictly more extreme, or equal with a
// smaller index; index 0 marks an empty slot and never wins.
const argextPartialSrc = `
@group(0) @binding(0) var<storage, read> x: array<f32>;

struct Pair {
    val: f32,
    idx: u32,
}
@group(0) @binding(1) var<storage, read_write> partials: array<Pair>;

struct Params {
    n: u32,
    incx: i32,
    offx: i32,
    nwg: u32,
    minimize: u32,
}
@group(0) @binding(2) var<uniform> params: Params;

var<workgroup> sval: array<f32, 256>;
var<workgroup> sidx: array<u32, 256>;

fn replaces(cv: f32, ci: u32, bv: f32, bi: u32) -> bool {
    if (ci == 0u) {
        return false;
    }
    if (bi == 0u) {
        return true;
    }
    if (params.minimize == 1u) {
        if (cv < bv) {
            return true;
        }
    } else {
        if (cv > bv) {
            return true;
        }
    }
    return cv == bv && ci < bi;
}

@compute @workgroup_size(256)
fn main(@builtin(workgroup_id) wg: vec3<u32>, @builtin(local_invocation_id) local: vec3<u32>) {
    var i = wg.x * 256u + local.x;
    let inc = 256u * params.nwg;
    var bv = 0.0;
    var bi = 0u;
    for (var j = 0u; j < 4u && i < params.n; j = j + 1u) {
        let cv = abs(x[u32(params.offx + i32(i) * params.incx)]);
        if (replaces(cv, i + 1u, bv, bi)) {
            bv = cv;
            bi = i + 1u;
        }
        i = i + inc;
    }
    sval[local.x] = bv;
    sidx[local.x] = bi;
    workgroupBarrier();
    for (var s = 128u; s > 0u; s = s >> 1u) {
        if (local.x < s) {
            if (replaces(sval[local.x + s], sidx[local.x + s], sval[local.x], sidx[local.x])) {
                sval[local.x] = sval[local.x + s];
                sidx[local.x] = sidx[local.x + s];
            }
        }
        workgroupBarrier();
    }
    if (local.x == 0u) {
        partials[wg.x] = Pair(sval[0], sidx[0]);
    }
}
`

// argextFinalSrc folds stage-1 extremum pairs into result[0]. The host
// unpacks the index field of the winning pair.
const argextFinalSrc = `
struct Pair {
    val: f32,
    idx: u32,
}
@group(0) @binding(0) var<storage, read> partials: array<Pair>;
@group(0) @binding(1) var<storage, read_write> result: array<Pair>;

struct Params {
    count: u32,
    minimize: u32,
}
@group(0) @binding(2) var<uniform> params: Params;

var<workgroup> sval: array<f32, 256>;
var<workgroup> sidx: array<u32, 256>;

fn replaces(cv: f32, ci: u32, bv: f32, bi: u32) -> bool {
    if (ci == 0u) {
        return false;
    }
    if (bi == 0u) {
        return true;
    }
    if (params.minimize == 1u) {
        if (cv < bv) {
            return true;
        }
    } else {
        if (cv > bv) {
            return true;
        }
    }
    return cv == bv && ci < bi;
}

@compute @workgroup_size(256)
fn main(@builtin(local_invocation_id) local: vec3<u32>) {
    var bv = 0.0;
    var bi = 0u;
    for (var i = local.x; i < params.count; i = i + 256u) {
        if (replaces(partials[i].val, partials[i].idx, bv, bi)) {
            bv = partials[i].val;
            bi = partials[i].idx;
        }
    }
    sval[local.x] = bv;
    sidx[local.x] = bi;
    workgroupBarrier();
    for (var s = 128u; s > 0u; s = s >> 1u) {
        if (local.x < s) {
            if (replaces(sval[local.x + s], sidx[local.x + s], sval[local.x], sidx[local.x])) {
                sval[local.x] = sval[local.x + s];
                sidx[local.x] = sidx[local.x + s];
            }
        }
        workgroupBarrier();
    }
    if (local.x == 0u) {
        result[0] = Pair(sval[0], sidx[0]);
    }
}
`

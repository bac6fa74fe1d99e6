package bezier

// GLSL is the evaluator as GLSL 330 source, shared by every curve vertex
// program. It expects the control points in uPoints.
const GLSL = `
uniform vec3 uPoints[4];

vec3 bezierPoint(float t) {
    vec3 e = mix(uPoints[0], uPoints[1], t);
    vec3 f = mix(uPoints[1], uPoints[2], t);
    vec3 g = mix(uPoints[2], uPoints[3], t);
    vec3 h = mix(e, f, t);
    vec3 i = mix(f, g, t);
    return mix(h, i, t);
}

vec3 bezierNormal(float t) {
    vec3 de = uPoints[1] - uPoints[0];
    vec3 df = uPoints[2] - uPoints[1];
    vec3 dg = uPoints[3] - uPoints[2];
    vec3 dh = mix(de, df, t);
    vec3 di = mix(df, dg, t);
    vec3 deriv = 3.0 * mix(dh, di, t);
    return normalize(cross(deriv, vec3(0.0, 1.0, 0.0)));
}
`

// WGSL is the same evaluator in WGSL, used by the shader package's WGSL
// twins, which are validated but not run. The including program passes the
// control points explicitly.
const WGSL = `
fn bezier_point(a: vec3<f32>, b: vec3<f32>, c: vec3<f32>, d: vec3<f32>, t: f32) -> vec3<f32> {
    let s = vec3<f32>(t, t, t);
    let e = mix(a, b, s);
    let f = mix(b, c, s);
    let g = mix(c, d, s);
    let h = mix(e, f, s);
    let i = mix(f, g, s);
    return mix(h, i, s);
}

fn bezier_normal(a: vec3<f32>, b: vec3<f32>, c: vec3<f32>, d: vec3<f32>, t: f32) -> vec3<f32> {
    let s = vec3<f32>(t, t, t);
    let dh = mix(b - a, c - b, s);
    let di = mix(c - b, d - c, s);
    let deriv = mix(dh, di, s) * 3.0;
    return normalize(cross(deriv, vec3<f32>(0.0, 1.0, 0.0)));
}
`

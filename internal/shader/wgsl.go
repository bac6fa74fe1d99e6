package shader

// The WGSL programs share one uniform block. points holds the control points
// in xyz; light_dir.w carries the ambient term.
const wgslHeader = `
struct Uniforms {
    mvp: mat4x4<f32>,
    model: mat4x4<f32>,
    points: array<vec4<f32>, 4>,
    color: vec4<f32>,
    emissive: vec4<f32>,
    light_dir: vec4<f32>,
};

@group(0) @binding(0) var<uniform> u: Uniforms;

struct VertexOutput {
    @builtin(position) position: vec4<f32>,
    @location(0) normal: vec3<f32>,
};
`

const (
	lineWGSL = `
@vertex
fn vs_main(@location(0) position: vec3<f32>) -> VertexOutput {
    var out: VertexOutput;
    let p = bezier_point(u.points[0].xyz, u.points[1].xyz, u.points[2].xyz, u.points[3].xyz, position.z);
    out.position = u.mvp * vec4<f32>(p, 1.0);
    out.normal = vec3<f32>(0.0, 1.0, 0.0);
    return out;
}
`

	extrudeWGSL = `
@vertex
fn vs_main(@location(0) position: vec3<f32>) -> VertexOutput {
    var out: VertexOutput;
    let a = u.points[0].xyz;
    let b = u.points[1].xyz;
    let c = u.points[2].xyz;
    let d = u.points[3].xyz;
    let p = bezier_point(a, b, c, d, position.z) - bezier_normal(a, b, c, d, position.z) * position.x * 2.0;
    out.position = u.mvp * vec4<f32>(p.x, position.y, p.z, 1.0);
    out.normal = vec3<f32>(0.0, 1.0, 0.0);
    return out;
}
`

	connectorWGSL = `
@vertex
fn vs_main(@location(0) position: vec3<f32>) -> VertexOutput {
    var out: VertexOutput;
    let i = u32(clamp(floor(position.z + 0.5), 0.0, 3.0));
    out.position = u.mvp * vec4<f32>(u.points[i].xyz, 1.0);
    out.normal = vec3<f32>(0.0, 1.0, 0.0);
    return out;
}
`

	markerWGSL = `
@vertex
fn vs_main(@location(0) position: vec3<f32>) -> VertexOutput {
    var out: VertexOutput;
    out.position = u.mvp * vec4<f32>(position, 1.0);
    out.normal = vec3<f32>(0.0, 1.0, 0.0);
    return out;
}
`

	flatWGSL = `
@fragment
fn fs_main() -> @location(0) vec4<f32> {
    return u.color;
}
`

	litWGSL = `
@vertex
fn vs_main(@location(0) position: vec3<f32>, @location(1) normal: vec3<f32>) -> VertexOutput {
    var out: VertexOutput;
    out.position = u.mvp * vec4<f32>(position, 1.0);
    out.normal = (u.model * vec4<f32>(normal, 0.0)).xyz;
    return out;
}

@fragment
fn fs_main(frag: VertexOutput) -> @location(0) vec4<f32> {
    let n = normalize(frag.normal);
    let l = normalize(u.light_dir.xyz);
    let ambient = u.light_dir.w;
    let diffuse = max(dot(n, l), 0.0);
    let rgb = u.color.rgb * (ambient + (1.0 - ambient) * diffuse) + u.emissive.rgb;
    return vec4<f32>(min(rgb, vec3<f32>(1.0, 1.0, 1.0)), u.color.a);
}
`
)

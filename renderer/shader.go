package renderer

// solidShaderSource draws a single flat-shaded quad, scissored to the
// damage rect currently set on the render pass. Adapted from the
// vertex-index quad-generation trick in the textured-quad shader this
// package's sibling package was copied from, with the texture sample
// replaced by a uniform color.
const solidShaderSource = `
struct Uniforms {
    ndcRect: vec4<f32>, // x, y, w, h in NDC
    color: vec4<f32>,
}

@group(0) @binding(0) var<uniform> uniforms: Uniforms;

@vertex
fn vs_main(@builtin(vertex_index) vertexIndex: u32) -> @builtin(position) vec4<f32> {
    var corners = array<vec2<f32>, 6>(
        vec2<f32>(0.0, 1.0),
        vec2<f32>(0.0, 0.0),
        vec2<f32>(1.0, 0.0),
        vec2<f32>(0.0, 1.0),
        vec2<f32>(1.0, 0.0),
        vec2<f32>(1.0, 1.0),
    );
    let c = corners[vertexIndex];
    let x = uniforms.ndcRect.x + c.x * uniforms.ndcRect.z;
    let y = uniforms.ndcRect.y - c.y * uniforms.ndcRect.w;
    return vec4<f32>(x, y, 0.0, 1.0);
}

@fragment
fn fs_main() -> @location(0) vec4<f32> {
    return uniforms.color;
}
`

// texturedShaderSource draws a textured quad with a per-draw transform
// and alpha, sampling the four per-corner UVs uv0..uv3 (top-left,
// bottom-left, bottom-right, top-right of the drawn quad). Adapted from
// texturedQuadShaderSource's uniform-transform idiom, extended with a
// separate alpha multiplier and per-corner UVs so a single draw can sample
// an arbitrary, transformed sub-rect of the source texture (needed for
// buffer damage/crop, not present in the original single-full-texture
// shader).
const texturedShaderSource = `
struct Uniforms {
    ndcRect: vec4<f32>,  // x, y, w, h in NDC
    uv0: vec2<f32>,       // per-corner uv, already transform-adjusted on the CPU side
    uv1: vec2<f32>,
    uv2: vec2<f32>,
    uv3: vec2<f32>,
    alpha: f32,
}

@group(0) @binding(0) var<uniform> uniforms: Uniforms;
@group(1) @binding(0) var texSampler: sampler;
@group(1) @binding(1) var tex: texture_2d<f32>;

struct VertexOutput {
    @builtin(position) position: vec4<f32>,
    @location(0) uv: vec2<f32>,
}

@vertex
fn vs_main(@builtin(vertex_index) vertexIndex: u32) -> VertexOutput {
    var corners = array<vec2<f32>, 6>(
        vec2<f32>(0.0, 1.0),
        vec2<f32>(0.0, 0.0),
        vec2<f32>(1.0, 0.0),
        vec2<f32>(0.0, 1.0),
        vec2<f32>(1.0, 0.0),
        vec2<f32>(1.0, 1.0),
    );
    var uvs = array<vec2<f32>, 6>(
        uniforms.uv1, uniforms.uv0, uniforms.uv3,
        uniforms.uv1, uniforms.uv3, uniforms.uv2,
    );
    let c = corners[vertexIndex];

    var out: VertexOutput;
    let x = uniforms.ndcRect.x + c.x * uniforms.ndcRect.z;
    let y = uniforms.ndcRect.y - c.y * uniforms.ndcRect.w;
    out.position = vec4<f32>(x, y, 0.0, 1.0);
    out.uv = uvs[vertexIndex];
    return out;
}

@fragment
fn fs_main(input: VertexOutput) -> @location(0) vec4<f32> {
    let texColor = textureSample(tex, texSampler, input.uv);
    return texColor * uniforms.alpha;
}
`

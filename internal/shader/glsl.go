package shader

import "bezier-stencil/internal/bezier"

// raylib feeds vertexPosition/vertexNormal and sets mvp for both meshes and
// immediate-mode lines, so every program transforms with mvp.
const vsHeader = `#version 330
in vec3 vertexPosition;
uniform mat4 mvp;
`

const (
	lineVS = vsHeader + bezier.GLSL + `
void main() {
    gl_Position = mvp * vec4(bezierPoint(vertexPosition.z), 1.0);
}
`

	extrudeVS = vsHeader + bezier.GLSL + `
void main() {
    float t = vertexPosition.z;
    vec3 p = bezierPoint(t);
    p -= bezierNormal(t) * vertexPosition.x * 2.0;
    p.y = vertexPosition.y;
    gl_Position = mvp * vec4(p, 1.0);
}
`
)

const (
	connectorVS = vsHeader + `
uniform vec3 uPoints[4];

void main() {
    float z = vertexPosition.z;
    int i = z < 0.5 ? 0 : (z < 1.5 ? 1 : (z < 2.5 ? 2 : 3));
    gl_Position = mvp * vec4(uPoints[i], 1.0);
}
`

	markerVS = vsHeader + `
void main() {
    gl_Position = mvp * vec4(vertexPosition, 1.0);
}
`

	flatFS = `#version 330
uniform vec3 uColor;
uniform float uAlpha;
out vec4 finalColor;

void main() {
    finalColor = vec4(uColor, uAlpha);
}
`

	litVS = vsHeader + `
in vec3 vertexNormal;
uniform mat4 matModel;
out vec3 fragNormal;

void main() {
    fragNormal = mat3(matModel) * vertexNormal;
    gl_Position = mvp * vec4(vertexPosition, 1.0);
}
`

	litFS = `#version 330
in vec3 fragNormal;
uniform vec3 uColor;
uniform float uAlpha;
uniform vec3 uEmissive;
uniform vec3 uLightDir;
uniform float uAmbient;
out vec4 finalColor;

void main() {
    float diffuse = max(dot(normalize(fragNormal), normalize(uLightDir)), 0.0);
    vec3 rgb = uColor * (uAmbient + (1.0 - uAmbient) * diffuse) + uEmissive;
    finalColor = vec4(min(rgb, vec3(1.0)), uAlpha);
}
`
)

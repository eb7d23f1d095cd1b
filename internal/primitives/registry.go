package primitives

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	sphereRings       = 10
	sphereSlices      = 14
	defaultBodyRadius = 0.5
	// Bodies dim to fadeFloor of their colour at fadeDistance and beyond.
	fadeFloor = 0.35
)

// Registry owns the body sphere mesh and its material. GPU resources are created on
// the first BeginBodies call, once the window and its GL context exist.
type Registry struct {
	style BodyStyle
	color rl.Color

	loaded bool
	mesh   rl.Mesh
	mtl    rl.Material

	eye          [3]float32
	fadeDistance float32
	eyeLoc       int32
	fadeLoc      int32
	floorLoc     int32
}

// NewRegistry returns a registry drawing bodies in the given style. An unparsable
// color falls back to white.
func NewRegistry(style BodyStyle) *Registry {
	color, err := ParseColor(style.Color)
	if err != nil {
		color = rl.White
	}
	if style.Radius <= 0 {
		style.Radius = defaultBodyRadius
	}
	return &Registry{style: style, color: color, eyeLoc: -1, fadeLoc: -1, floorLoc: -1}
}

// SetView sets the eye position and the distance at which bodies reach full fade.
// The light is a headlight at the eye. Call once per frame before BeginBodies.
func (r *Registry) SetView(eye [3]float32, fadeDistance float32) {
	r.eye = eye
	r.fadeDistance = fadeDistance
}

func (r *Registry) load() {
	r.mesh = rl.GenMeshSphere(r.style.Radius, sphereRings, sphereSlices)
	r.mtl = rl.LoadMaterialDefault()
	if albedo := r.mtl.GetMap(rl.MapAlbedo); albedo != nil {
		albedo.Color = r.color
	}
	shader := rl.LoadShaderFromMemory(headlightVS, headlightFS)
	if rl.IsShaderValid(shader) {
		r.mtl.Shader = shader
		r.eyeLoc = rl.GetShaderLocation(shader, "eye")
		r.fadeLoc = rl.GetShaderLocation(shader, "fadeDistance")
		r.floorLoc = rl.GetShaderLocation(shader, "fadeFloor")
	}
	r.loaded = true
}

// Unload frees the GPU mesh and material. Safe to call before anything was drawn.
func (r *Registry) Unload() {
	if !r.loaded {
		return
	}
	rl.UnloadMesh(&r.mesh)
	rl.UnloadMaterial(r.mtl)
	r.loaded = false
}

// BeginBodies uploads the per-frame uniforms. Call once per frame, inside
// BeginMode3D, before DrawBody.
func (r *Registry) BeginBodies() {
	if !r.loaded {
		r.load()
	}
	shader := r.mtl.Shader
	if r.eyeLoc >= 0 {
		rl.SetShaderValueV(shader, r.eyeLoc, r.eye[:], rl.ShaderUniformVec3, 1)
	}
	if r.fadeLoc >= 0 {
		rl.SetShaderValue(shader, r.fadeLoc, []float32{r.fadeDistance}, rl.ShaderUniformFloat)
	}
	if r.floorLoc >= 0 {
		rl.SetShaderValue(shader, r.floorLoc, []float32{fadeFloor}, rl.ShaderUniformFloat)
	}
}

// DrawBody draws one body sphere at position with uniform scale (0 means 1).
// Must be called between BeginMode3D and EndMode3D, after BeginBodies.
func (r *Registry) DrawBody(position [3]float32, scale float32) {
	if !r.loaded {
		return
	}
	if scale == 0 {
		scale = 1
	}
	transform := rl.MatrixMultiply(
		rl.MatrixScale(scale, scale, scale),
		rl.MatrixTranslate(position[0], position[1], position[2]),
	)
	rl.DrawMesh(r.mesh, r.mtl, transform)
}

const headlightVS = `#version 330
in vec3 vertexPosition;
in vec3 vertexNormal;
uniform mat4 mvp;
uniform mat4 matModel;
out vec3 worldPos;
out vec3 worldNormal;
void main() {
  worldPos = (matModel * vec4(vertexPosition, 1.0)).xyz;
  worldNormal = mat3(matModel) * vertexNormal;
  gl_Position = mvp * vec4(vertexPosition, 1.0);
}
`

// The light sits at the eye, so every visible face is lit and distant bodies fade.
const headlightFS = `#version 330
in vec3 worldPos;
in vec3 worldNormal;
uniform vec4 colDiffuse;
uniform vec3 eye;
uniform float fadeDistance;
uniform float fadeFloor;
out vec4 finalColor;
void main() {
  vec3 toEye = eye - worldPos;
  float lambert = max(dot(normalize(worldNormal), normalize(toEye)), 0.0);
  float fade = 1.0;
  if (fadeDistance > 0.0) {
    fade = mix(1.0, fadeFloor, clamp(length(toEye) / fadeDistance, 0.0, 1.0));
  }
  finalColor = vec4(colDiffuse.rgb * (0.4 + 0.6 * lambert) * fade, colDiffuse.a);
}
`

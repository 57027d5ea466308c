// Package renderer issues the OpenGL draw calls for a frame: the shaded
// mesh, the ground quad and the flattened shadow pass.
package renderer

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/orbitlab/shipview/internal/engine/lighting"
	"github.com/orbitlab/shipview/internal/engine/segment"
	"github.com/orbitlab/shipview/internal/engine/state"
	"github.com/orbitlab/shipview/internal/logger"
)

// Config holds renderer configuration.
type Config struct {
	Width  int
	Height int
}

// uniforms caches the shader uniform locations looked up at link time.
type uniforms struct {
	model, view, proj int32
	normalMatrix      int32
	lightPos          int32
	lightAmbient      int32
	lightDiffuse      int32
	lightSpecular     int32
	matAmbient        int32
	matSpecular       int32
	shininess         int32
	viewPos           int32
	lightingEnabled   int32
	useOverride       int32
	overrideColor     int32
}

// Renderer handles all OpenGL rendering.
// Must be created AFTER the OpenGL context exists.
type Renderer struct {
	config Config

	program uint32
	uni     uniforms

	mesh   *batch
	ground *batch

	// Face permutation and per-region draw spans of the uploaded mesh.
	meshOrder []int
	spans     []regionSpan
}

// New initializes OpenGL state and compiles the shader program.
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{config: cfg}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	version := gl.GoStr(gl.GetString(gl.VERSION))
	rendererName := gl.GoStr(gl.GetString(gl.RENDERER))
	logger.Info("OpenGL initialized",
		zap.String("version", version),
		zap.String("renderer", rendererName),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.ClearColor(0.05, 0.05, 0.1, 1.0) // deep space background

	var err error
	r.program, err = r.createShaderProgram()
	if err != nil {
		return nil, fmt.Errorf("failed to create shader program: %w", err)
	}
	r.lookupUniforms()

	return r, nil
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	logger.Info("closing renderer")
	if r.mesh != nil {
		r.mesh.destroy()
	}
	if r.ground != nil {
		r.ground.destroy()
	}
	if r.program != 0 {
		gl.DeleteProgram(r.program)
	}
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	logger.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Aspect returns the current viewport aspect ratio.
func (r *Renderer) Aspect() float32 {
	if r.config.Height == 0 {
		return 1
	}
	return float32(r.config.Width) / float32(r.config.Height)
}

// Begin starts a new frame.
func (r *Renderer) Begin() {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// DrawMesh draws the uploaded model with the Phong shader, one region
// span at a time so each hull section shades with its own material.
func (r *Renderer) DrawMesh(model, view, proj mgl32.Mat4, normalMat mgl32.Mat3,
	light lighting.Light, materials segment.MaterialTable, viewPos mgl32.Vec3,
	lit bool, mode state.RenderMode) {

	if r.mesh == nil {
		return
	}

	gl.UseProgram(r.program)
	gl.UniformMatrix4fv(r.uni.model, 1, false, &model[0])
	gl.UniformMatrix4fv(r.uni.view, 1, false, &view[0])
	gl.UniformMatrix4fv(r.uni.proj, 1, false, &proj[0])
	gl.UniformMatrix3fv(r.uni.normalMatrix, 1, false, &normalMat[0])

	gl.Uniform3fv(r.uni.lightPos, 1, &light.Position[0])
	gl.Uniform3fv(r.uni.lightAmbient, 1, &light.Ambient[0])
	gl.Uniform3fv(r.uni.lightDiffuse, 1, &light.Diffuse[0])
	gl.Uniform3fv(r.uni.lightSpecular, 1, &light.Specular[0])
	gl.Uniform3fv(r.uni.viewPos, 1, &viewPos[0])

	gl.Uniform1i(r.uni.lightingEnabled, boolUniform(lit))
	gl.Uniform1i(r.uni.useOverride, 0)

	applyPolygonMode(mode)
	gl.BindVertexArray(r.mesh.vao)
	for _, s := range r.spans {
		mat := materials[s.region]
		gl.Uniform3fv(r.uni.matAmbient, 1, &mat.Ambient[0])
		gl.Uniform3fv(r.uni.matSpecular, 1, &mat.Specular[0])
		gl.Uniform1f(r.uni.shininess, mat.Shininess)
		gl.DrawArrays(gl.TRIANGLES, s.first, s.count)
	}
	gl.BindVertexArray(0)
	applyPolygonMode(state.RenderFilled)
}

// DrawGround draws the unlit ground quad.
func (r *Renderer) DrawGround(view, proj mgl32.Mat4) {
	if r.ground == nil {
		return
	}

	gl.UseProgram(r.program)
	identity := mgl32.Ident4()
	gl.UniformMatrix4fv(r.uni.model, 1, false, &identity[0])
	gl.UniformMatrix4fv(r.uni.view, 1, false, &view[0])
	gl.UniformMatrix4fv(r.uni.proj, 1, false, &proj[0])

	gl.Uniform1i(r.uni.lightingEnabled, 0)
	gl.Uniform1i(r.uni.useOverride, 0)

	r.ground.draw()
}

// DrawShadow re-draws the mesh through the flattening transform as a
// blended dark silhouette. Polygon offset keeps it from z-fighting the
// ground it lies on.
func (r *Renderer) DrawShadow(shadowModel, view, proj mgl32.Mat4, color [4]float32) {
	if r.mesh == nil {
		return
	}

	gl.UseProgram(r.program)
	gl.UniformMatrix4fv(r.uni.model, 1, false, &shadowModel[0])
	gl.UniformMatrix4fv(r.uni.view, 1, false, &view[0])
	gl.UniformMatrix4fv(r.uni.proj, 1, false, &proj[0])

	gl.Uniform1i(r.uni.useOverride, 1)
	gl.Uniform4f(r.uni.overrideColor, color[0], color[1], color[2], color[3])

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.Enable(gl.POLYGON_OFFSET_FILL)
	gl.PolygonOffset(-1.0, -1.0)

	r.mesh.draw()

	gl.Disable(gl.POLYGON_OFFSET_FILL)
	gl.Disable(gl.BLEND)
	gl.Uniform1i(r.uni.useOverride, 0)
}

func applyPolygonMode(mode state.RenderMode) {
	switch mode {
	case state.RenderWireframe:
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
	case state.RenderPoints:
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.POINT)
		gl.PointSize(3)
	default:
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	}
}

func boolUniform(b bool) int32 {
	if b {
		return 1
	}
	return 0
}

func (r *Renderer) lookupUniforms() {
	loc := func(name string) int32 {
		return gl.GetUniformLocation(r.program, gl.Str(name+"\x00"))
	}
	r.uni = uniforms{
		model:           loc("uModel"),
		view:            loc("uView"),
		proj:            loc("uProj"),
		normalMatrix:    loc("uNormalMatrix"),
		lightPos:        loc("uLightPos"),
		lightAmbient:    loc("uLightAmbient"),
		lightDiffuse:    loc("uLightDiffuse"),
		lightSpecular:   loc("uLightSpecular"),
		matAmbient:      loc("uMatAmbient"),
		matSpecular:     loc("uMatSpecular"),
		shininess:       loc("uShininess"),
		viewPos:         loc("uViewPos"),
		lightingEnabled: loc("uLightingEnabled"),
		useOverride:     loc("uUseOverride"),
		overrideColor:   loc("uOverrideColor"),
	}
}

// createShaderProgram compiles and links the Phong shader.
func (r *Renderer) createShaderProgram() (uint32, error) {
	vertexShaderSource := `
		#version 410 core

		layout (location = 0) in vec3 aPos;
		layout (location = 1) in vec3 aNormal;
		layout (location = 2) in vec3 aColor;

		uniform mat4 uModel;
		uniform mat4 uView;
		uniform mat4 uProj;
		uniform mat3 uNormalMatrix;

		out vec3 vWorldPos;
		out vec3 vNormal;
		out vec3 vColor;

		void main() {
			vec4 world = uModel * vec4(aPos, 1.0);
			vWorldPos = world.xyz;
			vNormal = uNormalMatrix * aNormal;
			vColor = aColor;
			gl_Position = uProj * uView * world;
		}
	` + "\x00"

	fragmentShaderSource := `
		#version 410 core

		in vec3 vWorldPos;
		in vec3 vNormal;
		in vec3 vColor;

		out vec4 FragColor;

		uniform vec3 uLightPos;
		uniform vec3 uLightAmbient;
		uniform vec3 uLightDiffuse;
		uniform vec3 uLightSpecular;
		uniform vec3 uMatAmbient;
		uniform vec3 uMatSpecular;
		uniform float uShininess;
		uniform vec3 uViewPos;
		uniform bool uLightingEnabled;
		uniform bool uUseOverride;
		uniform vec4 uOverrideColor;

		void main() {
			if (uUseOverride) {
				FragColor = uOverrideColor;
				return;
			}
			if (!uLightingEnabled) {
				FragColor = vec4(vColor, 1.0);
				return;
			}

			vec3 n = normalize(vNormal);
			vec3 l = normalize(uLightPos - vWorldPos);
			vec3 v = normalize(uViewPos - vWorldPos);

			vec3 color = uLightAmbient * uMatAmbient * vColor;

			float nl = dot(n, l);
			if (nl > 0.0) {
				color += uLightDiffuse * vColor * nl;
				vec3 r = 2.0 * nl * n - l;
				float rv = max(dot(r, v), 0.0);
				color += uLightSpecular * uMatSpecular * pow(rv, uShininess);
			}

			FragColor = vec4(clamp(color, 0.0, 1.0), 1.0);
		}
	` + "\x00"

	vertexShader, err := compileShader(vertexShaderSource, gl.VERTEX_SHADER)
	if err != nil {
		return 0, fmt.Errorf("vertex shader: %w", err)
	}
	defer gl.DeleteShader(vertexShader)

	fragmentShader, err := compileShader(fragmentShaderSource, gl.FRAGMENT_SHADER)
	if err != nil {
		return 0, fmt.Errorf("fragment shader: %w", err)
	}
	defer gl.DeleteShader(fragmentShader)

	program := gl.CreateProgram()
	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		infoLog := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(infoLog))
		return 0, fmt.Errorf("link failed: %s", infoLog)
	}

	logger.Debug("shader program created", zap.Uint32("program", program))
	return program, nil
}

// compileShader compiles a shader from source.
func compileShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)

	csources, free := gl.Strs(source)
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		infoLog := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(infoLog))
		return 0, fmt.Errorf("compile failed: %s", infoLog)
	}

	return shader, nil
}

package render

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// ShaderSlot names a compiled shader program. Slots are fixed at compile time.
type ShaderSlot int

const (
	// ShaderColor draws per-vertex colors.
	ShaderColor ShaderSlot = iota
	// ShaderTexture samples the volume's texture with per-vertex UVs.
	ShaderTexture
	shaderCount
)

func (s ShaderSlot) String() string {
	switch s {
	case ShaderColor:
		return "def"
	case ShaderTexture:
		return "tex"
	}
	return fmt.Sprintf("shader(%d)", int(s))
}

// Next returns the slot after s, wrapping around.
func (s ShaderSlot) Next() ShaderSlot {
	return (s + 1) % shaderCount
}

// ParseShaderSlot maps "def" or "tex" to a slot.
func ParseShaderSlot(name string) (ShaderSlot, bool) {
	for s := ShaderColor; s < shaderCount; s++ {
		if s.String() == name {
			return s, true
		}
	}
	return 0, false
}

func loadShader(s ShaderSlot) (rl.Shader, error) {
	var sh rl.Shader
	switch s {
	case ShaderColor:
		sh = rl.LoadShaderFromMemory(colorVS, colorFS)
	case ShaderTexture:
		sh = rl.LoadShaderFromMemory(textureVS, textureFS)
	default:
		return sh, fmt.Errorf("render: no source for %s", s)
	}
	if !rl.IsShaderValid(sh) {
		return sh, fmt.Errorf("render: %s shader failed to compile or link", s)
	}
	return sh, nil
}

// Attribute and uniform names follow raylib's defaults so LoadShaderFromMemory binds them:
// vertexPosition, vertexColor, vertexTexCoord, mvp, texture0.
const (
	colorVS = `#version 330
in vec3 vertexPosition;
in vec4 vertexColor;
uniform mat4 mvp;
out vec4 fragColor;
void main() {
  fragColor = vertexColor;
  gl_Position = mvp * vec4(vertexPosition, 1.0);
}
`
	colorFS = `#version 330
in vec4 fragColor;
out vec4 finalColor;
void main() {
  finalColor = vec4(fragColor.rgb, 1.0);
}
`
	textureVS = `#version 330
in vec3 vertexPosition;
in vec2 vertexTexCoord;
uniform mat4 mvp;
out vec2 fragTexCoord;
void main() {
  fragTexCoord = vertexTexCoord;
  gl_Position = mvp * vec4(vertexPosition, 1.0);
}
`
	textureFS = `#version 330
in vec2 fragTexCoord;
uniform sampler2D texture0;
out vec4 finalColor;
void main() {
  finalColor = texture(texture0, fragTexCoord);
}
`
)

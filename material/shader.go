package material

import "fmt"

// VertexShader passes mesh UVs through to the fragment stage.
const VertexShader = `varying vec2 vUv;

void main() {
  vUv = uv;
  gl_Position = projectionMatrix * modelViewMatrix * vec4(position, 1.0);
}
`

// FragmentShader samples texture3D on the mid-depth plane.
const FragmentShader = `precision highp sampler3D;
uniform sampler3D texture3D;
varying vec2 vUv;

void main() {
  vec3 texCoords = vec3(vUv, 0.5);
  vec4 color = texture(texture3D, texCoords);
  gl_FragColor = color;
}
`

// Stage names a shader stage.
type Stage string

const (
	StageVertex   Stage = "vertex"
	StageFragment Stage = "fragment"
)

// ShaderSource returns the GLSL for stage.
func ShaderSource(stage Stage) (string, error) {
	switch stage {
	case StageVertex:
		return VertexShader, nil
	case StageFragment:
		return FragmentShader, nil
	}
	return "", fmt.Errorf("unknown shader stage %q", stage)
}

package render

// Shared scene shader: up to three directional lights, optional linear fog,
// diffuse/emissive/specular material slots.

const sceneVertexShader = `
#version 410 core

layout (location = 0) in vec3 aPos;
layout (location = 1) in vec3 aNormal;
layout (location = 2) in vec2 aTexCoord;

uniform mat4 uMVP;
uniform mat4 uModel;

out vec3 vNormal;
out vec3 vWorldPos;
out vec2 vTexCoord;

void main() {
	vec4 world = uModel * vec4(aPos, 1.0);
	vWorldPos = world.xyz;
	vNormal = mat3(uModel) * aNormal;
	vTexCoord = aTexCoord;
	gl_Position = uMVP * vec4(aPos, 1.0);
}
`

const sceneFragmentShader = `
#version 410 core

in vec3 vNormal;
in vec3 vWorldPos;
in vec2 vTexCoord;

uniform sampler2D uTexture;

uniform int  uLightCount;
uniform vec3 uLightDir[3];
uniform vec3 uLightDiffuse[3];
uniform vec3 uLightSpecular[3];

uniform vec3  uAmbient;
uniform vec4  uDiffuse;
uniform vec4  uEmissive;
uniform vec4  uSpecular;
uniform float uSpecPower;
uniform vec3  uEyePos;

uniform int   uFogUse;
uniform float uFogNear;
uniform float uFogFar;
uniform vec3  uFogColor;

out vec4 FragColor;

void main() {
	vec4 texColor = texture(uTexture, vTexCoord);
	vec3 n = normalize(vNormal);
	vec3 viewDir = normalize(uEyePos - vWorldPos);

	vec3 lit = uAmbient;
	vec3 spec = vec3(0.0);
	for (int i = 0; i < uLightCount; i++) {
		vec3 l = normalize(-uLightDir[i]);
		float ndl = max(dot(n, l), 0.0);
		lit += uLightDiffuse[i] * ndl;
		if (ndl > 0.0 && uSpecPower > 0.0) {
			vec3 h = normalize(l + viewDir);
			spec += uLightSpecular[i] * uSpecular.rgb * pow(max(dot(n, h), 0.0), uSpecPower);
		}
	}

	vec3 color = texColor.rgb * uDiffuse.rgb * lit + uEmissive.rgb + spec;

	if (uFogUse != 0) {
		float dist = length(uEyePos - vWorldPos);
		float f = clamp((uFogFar - dist) / (uFogFar - uFogNear), 0.0, 1.0);
		color = mix(uFogColor, color, f);
	}

	FragColor = vec4(color, texColor.a * uDiffuse.a);
}
`

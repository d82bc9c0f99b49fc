package shader

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/cogentcore/webgpu/wgpu"
)

// vertexFormatInfo holds the wgpu vertex format and its byte size for offset calculation
type vertexFormatInfo struct {
	format wgpu.VertexFormat
	size   uint64
}

// wgslVertexFormatMap maps WGSL type names to their corresponding wgpu vertex format and byte size
var wgslVertexFormatMap = map[string]vertexFormatInfo{
	"f32":       {wgpu.VertexFormatFloat32, 4},
	"vec2f":     {wgpu.VertexFormatFloat32x2, 8},
	"vec2<f32>": {wgpu.VertexFormatFloat32x2, 8},
	"vec3f":     {wgpu.VertexFormatFloat32x3, 12},
	"vec3<f32>": {wgpu.VertexFormatFloat32x3, 12},
	"vec4f":     {wgpu.VertexFormatFloat32x4, 16},
	"vec4<f32>": {wgpu.VertexFormatFloat32x4, 16},
	"u32":       {wgpu.VertexFormatUint32, 4},
}

// wgslUniformSizeMap holds the byte size of the WGSL types accepted as a bare uniform binding
var wgslUniformSizeMap = map[string]uint64{
	"f32":         4,
	"vec2f":       8,
	"vec4f":       16,
	"vec4<f32>":   16,
	"mat4x4f":     64,
	"mat4x4<f32>": 64,
}

var (
	// structBlockRegex matches a struct declaration, capturing its name and body
	structBlockRegex = regexp.MustCompile(`struct\s+(\w+)\s*\{([^}]*)\}`)

	// locationRegex captures the location index of a field attribute
	locationRegex = regexp.MustCompile(`@location\((\d+)\)`)

	// builtinRegex matches a @builtin(...) attribute
	builtinRegex = regexp.MustCompile(`@builtin\(\w+\)`)

	// fieldRegex captures the name and type of a struct field after its attributes
	fieldRegex = regexp.MustCompile(`(?:@\w+\([^)]*\)\s*)*(\w+)\s*:\s*(.+)`)

	// vertexEntryRegex captures the function name following @vertex
	vertexEntryRegex = regexp.MustCompile(`(?s)@vertex\b.*?\bfn\s+(\w+)`)

	// fragmentEntryRegex captures the function name following @fragment
	fragmentEntryRegex = regexp.MustCompile(`(?s)@fragment\b.*?\bfn\s+(\w+)`)

	// uniformDeclRegex captures the binding index and type of a group 0 uniform declaration
	uniformDeclRegex = regexp.MustCompile(`@group\(0\)\s*@binding\((\d+)\)\s*var<uniform>\s+\w+\s*:\s*([^;]+?)\s*;`)
)

// parsedField represents a single field extracted from a WGSL struct during parsing
type parsedField struct {
	name      string
	typeName  string
	location  int
	isBuiltin bool
}

// parsedStruct represents a WGSL struct block extracted during parsing
type parsedStruct struct {
	name   string
	fields []parsedField
}

// parseEntryPoint extracts the entry point function name for the given stage from WGSL source.
// Returns an empty string if no matching entry point annotation is found.
//
// Parameters:
//   - source: the raw WGSL source code string
//   - shaderType: the stage to search for
//
// Returns:
//   - string: the entry point function name, or empty string if not found
func parseEntryPoint(source string, shaderType ShaderType) string {
	cleaned := stripLineComments(source)

	var re *regexp.Regexp
	switch shaderType {
	case ShaderTypeVertex:
		re = vertexEntryRegex
	case ShaderTypeFragment:
		re = fragmentEntryRegex
	default:
		return ""
	}

	if match := re.FindStringSubmatch(cleaned); match != nil {
		return match[1]
	}
	return ""
}

// parseVertexLayouts builds one vertex buffer layout per vertex input struct, meaning a struct
// whose fields all carry @location and none carry @builtin.
func parseVertexLayouts(source string) []wgpu.VertexBufferLayout {
	var layouts []wgpu.VertexBufferLayout
	for _, ps := range parseStructBlocks(stripLineComments(source)) {
		if !isVertexInputStruct(ps) {
			continue
		}
		if layout, ok := buildVertexBufferLayout(ps); ok {
			layouts = append(layouts, layout)
		}
	}
	return layouts
}

// parseUniformBindings extracts the group 0 uniform declarations as bind group layout entries.
func parseUniformBindings(source string, visibility wgpu.ShaderStage) []wgpu.BindGroupLayoutEntry {
	var entries []wgpu.BindGroupLayoutEntry
	for _, match := range uniformDeclRegex.FindAllStringSubmatch(stripLineComments(source), -1) {
		binding, _ := strconv.Atoi(match[1])
		entries = append(entries, wgpu.BindGroupLayoutEntry{
			Binding:    uint32(binding),
			Visibility: visibility,
			Buffer: wgpu.BufferBindingLayout{
				Type:           wgpu.BufferBindingTypeUniform,
				MinBindingSize: wgslUniformSizeMap[strings.TrimSpace(match[2])],
			},
		})
	}
	sortEntries(entries)
	return entries
}

// parseStructBlocks finds all struct { ... } blocks in the cleaned WGSL source
// and parses their fields including @location and @builtin attributes
func parseStructBlocks(source string) []parsedStruct {
	var out []parsedStruct
	for _, match := range structBlockRegex.FindAllStringSubmatch(source, -1) {
		ps := parsedStruct{name: match[1]}
		for _, raw := range strings.Split(match[2], ",") {
			raw = strings.TrimSpace(raw)
			if raw == "" {
				continue
			}
			fm := fieldRegex.FindStringSubmatch(raw)
			if fm == nil {
				continue
			}
			f := parsedField{
				name:      fm[1],
				typeName:  strings.TrimSpace(fm[2]),
				location:  -1,
				isBuiltin: builtinRegex.MatchString(raw),
			}
			if lm := locationRegex.FindStringSubmatch(raw); lm != nil {
				f.location, _ = strconv.Atoi(lm[1])
			}
			ps.fields = append(ps.fields, f)
		}
		out = append(out, ps)
	}
	return out
}

func isVertexInputStruct(ps parsedStruct) bool {
	hasLocation := false
	for _, f := range ps.fields {
		if f.isBuiltin {
			return false
		}
		if f.location >= 0 {
			hasLocation = true
		}
	}
	return hasLocation
}

// buildVertexBufferLayout converts a parsed vertex input struct into a wgpu.VertexBufferLayout
// with sequential offsets. Returns false if any field has an unrecognized type.
func buildVertexBufferLayout(ps parsedStruct) (wgpu.VertexBufferLayout, bool) {
	attrs := make([]wgpu.VertexAttribute, 0, len(ps.fields))
	var offset uint64

	for _, f := range ps.fields {
		info, ok := wgslVertexFormatMap[f.typeName]
		if !ok {
			return wgpu.VertexBufferLayout{}, false
		}
		attrs = append(attrs, wgpu.VertexAttribute{
			Format:         info.format,
			Offset:         offset,
			ShaderLocation: uint32(f.location),
		})
		offset += info.size
	}

	return wgpu.VertexBufferLayout{
		ArrayStride: offset,
		StepMode:    wgpu.VertexStepModeVertex,
		Attributes:  attrs,
	}, true
}

// stripLineComments removes single-line // comments from WGSL source so they
// do not interfere with struct and field parsing
func stripLineComments(source string) string {
	var sb strings.Builder
	for line := range strings.SplitSeq(source, "\n") {
		if idx := strings.Index(line, "//"); idx >= 0 {
			line = line[:idx]
		}
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	return sb.String()
}

func sortEntries(entries []wgpu.BindGroupLayoutEntry) {
	sort.Slice(entries, func(i, j int) bool { return entries[i].Binding < entries[j].Binding })
}

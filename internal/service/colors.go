package service

import (
	"strings"

	"labportal/internal/dto"
)

// processColorSpec 四色印刷的固定写法
const processColorSpec = "CMYK"

var processColors = []string{"C", "M", "Y", "K"}

// DeriveColorNames 由颜色规格得到有序的色版名列表
//   - "CMYK"（忽略大小写与首尾空白）→ [C M Y K]
//   - 其他按 "+" 拆分，保留顺序与重复项，丢弃空段
func DeriveColorNames(spec string) []string {
	spec = strings.TrimSpace(spec)
	if strings.EqualFold(spec, processColorSpec) {
		return append([]string(nil), processColors...)
	}

	names := make([]string, 0, strings.Count(spec, "+")+1)
	for _, part := range strings.Split(spec, "+") {
		if name := strings.TrimSpace(part); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// BuildSwatches 按参考表补全色值，找不到的色版色值留空
func BuildSwatches(names []string, hexByName map[string]string) []dto.ColorSwatch {
	swatches := make([]dto.ColorSwatch, 0, len(names))
	for _, name := range names {
		swatches = append(swatches, dto.ColorSwatch{Name: name, Hex: hexByName[name]})
	}
	return swatches
}

package service

import "strings"

// MediaPathRewriter 将稿件系统记录的网络共享路径改写为本地媒体服务路径
type MediaPathRewriter struct {
	SharePrefix string
	MediaPrefix string
}

// Rewrite 以共享前缀开头的路径替换为媒体前缀，其余原样返回
func (r MediaPathRewriter) Rewrite(location string) string {
	if location == "" || r.SharePrefix == "" {
		return location
	}
	if strings.HasPrefix(location, r.SharePrefix) {
		return r.MediaPrefix + strings.TrimPrefix(location, r.SharePrefix)
	}
	return location
}

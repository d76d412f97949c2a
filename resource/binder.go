package resource

import (
	"fmt"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"github.com/fyerfyer/fyer-resmodel/resource/internal/ferr"
)

// ValueHashMap 记录一次渲染过程中占位符到绑定值的映射。
// 每次构建语句都会新建一个，不能挂在 ResourceModel 上共享
type ValueHashMap struct {
	params  map[string]any
	digests map[uint64]boundValue
	keys    []string
}

type boundValue struct {
	key  string
	form string
}

func NewValueHashMap() *ValueHashMap {
	return &ValueHashMap{
		params:  make(map[string]any),
		digests: make(map[uint64]boundValue),
	}
}

// Len 返回不同绑定值的个数
func (m *ValueHashMap) Len() int {
	return len(m.keys)
}

func (m *ValueHashMap) Get(key string) (any, bool) {
	val, ok := m.params[key]
	return val, ok
}

// Keys 按首次绑定的顺序返回占位符
func (m *ValueHashMap) Keys() []string {
	res := make([]string, len(m.keys))
	copy(res, m.keys)
	return res
}

// Params 返回一份参数拷贝
func (m *ValueHashMap) Params() map[string]any {
	res := make(map[string]any, len(m.params))
	for k, v := range m.params {
		res[k] = v
	}
	return res
}

// Binder 根据值的内容（类型 + 序列化形式）生成占位符，相同的值只绑定一次
type Binder struct {
	prefix string
	digest func(string) uint64
}

func NewBinder() *Binder {
	return &Binder{
		prefix: "p",
		digest: xxhash.Sum64String,
	}
}

// Bind 把值放入 hm 并返回占位符名字。
// 摘要相同但内容不同说明出现了碰撞，直接报错而不是覆盖
func (b *Binder) Bind(val any, hm *ValueHashMap) (string, error) {
	form := serialize(val)
	sum := b.digest(form)

	if bound, ok := hm.digests[sum]; ok {
		if bound.form != form {
			return "", ferr.ErrHashCollision(bound.key, hm.params[bound.key], val)
		}
		return bound.key, nil
	}

	key := b.prefix + strconv.Itoa(len(hm.keys)+1)
	hm.digests[sum] = boundValue{key: key, form: form}
	hm.params[key] = val
	hm.keys = append(hm.keys, key)
	return key, nil
}

// Marker 返回 SQL 中使用的占位符写法
func (b *Binder) Marker(key string) string {
	return ":" + key
}

// serialize 类型参与序列化，int(5) 和 int64(5) 是两个不同的值
func serialize(val any) string {
	return fmt.Sprintf("%T\x00%#v", val, val)
}

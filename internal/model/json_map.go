package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// JSONMap 是一个以 JSON 列形式持久化的开放键值映射。
// 本服务不解释其内容，按调用方提交的原样存取。
type JSONMap map[string]interface{}

// Value 实现了 driver.Valuer 接口。
func (m JSONMap) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	return json.Marshal(m)
}

// Scan 实现了 sql.Scanner 接口。
func (m *JSONMap) Scan(value interface{}) error {
	if value == nil {
		*m = nil
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported type for JSONMap: %T", value)
	}
	return json.Unmarshal(data, m)
}

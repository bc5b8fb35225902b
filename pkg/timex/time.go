package timex

import (
	"database/sql/driver"
	"fmt"
	"time"
)

// 统一的时间序列化格式
const timeFormat = "2006-01-02 15:04:05"

// Time 包装 time.Time，提供统一的 JSON/YAML/数据库 序列化格式
type Time time.Time

// Now 返回当前时间
func Now() Time {
	return Time(time.Now())
}

// Time 转换为标准库 time.Time
func (t Time) Time() time.Time {
	return time.Time(t)
}

// IsZero 判断是否为零值时间
func (t Time) IsZero() bool {
	return time.Time(t).IsZero()
}

// After 判断 t 是否晚于 u
func (t Time) After(u Time) bool {
	return time.Time(t).After(time.Time(u))
}

// Before 判断 t 是否早于 u
func (t Time) Before(u Time) bool {
	return time.Time(t).Before(time.Time(u))
}

// Equal 判断两个时间是否相等
func (t Time) Equal(u Time) bool {
	return time.Time(t).Equal(time.Time(u))
}

func (t Time) Unix() int64 {
	return time.Time(t).Unix()
}

func (t Time) UnixMilli() int64 {
	return time.Time(t).UnixMilli()
}

func (t Time) UnixMicro() int64 {
	return time.Time(t).UnixMicro()
}

func (t Time) UnixNano() int64 {
	return time.Time(t).UnixNano()
}

// Format 按指定布局格式化
func (t Time) Format(layout string) string {
	return time.Time(t).Format(layout)
}

// String 实现 fmt.Stringer
func (t Time) String() string {
	return time.Time(t).Format(timeFormat)
}

// MarshalJSON 实现 json.Marshaler
func (t Time) MarshalJSON() ([]byte, error) {
	b := make([]byte, 0, len(timeFormat)+2)
	b = append(b, '"')
	b = time.Time(t).AppendFormat(b, timeFormat)
	b = append(b, '"')
	return b, nil
}

// UnmarshalJSON 实现 json.Unmarshaler
func (t *Time) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == "null" || s == `""` {
		*t = Time(time.Time{})
		return nil
	}
	parsed, err := time.ParseInLocation(`"`+timeFormat+`"`, s, time.Local)
	if err != nil {
		return fmt.Errorf("timex: cannot parse %s: %w", s, err)
	}
	*t = Time(parsed)
	return nil
}

// MarshalYAML 实现 yaml.Marshaler
func (t Time) MarshalYAML() (interface{}, error) {
	return t.String(), nil
}

// UnmarshalYAML 实现 yaml.Unmarshaler
func (t *Time) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	if s == "" {
		*t = Time(time.Time{})
		return nil
	}
	parsed, err := time.ParseInLocation(timeFormat, s, time.Local)
	if err != nil {
		return err
	}
	*t = Time(parsed)
	return nil
}

// Value 实现 driver.Valuer，供 gorm 写库使用
func (t Time) Value() (driver.Value, error) {
	if t.IsZero() {
		return nil, nil
	}
	return time.Time(t), nil
}

// Scan 实现 sql.Scanner，供 gorm 读库使用
func (t *Time) Scan(v interface{}) error {
	switch value := v.(type) {
	case nil:
		*t = Time(time.Time{})
	case time.Time:
		*t = Time(value)
	case string:
		parsed, err := time.ParseInLocation(timeFormat, value, time.Local)
		if err != nil {
			return fmt.Errorf("timex: cannot scan %q: %w", value, err)
		}
		*t = Time(parsed)
	default:
		return fmt.Errorf("timex: cannot scan value of type %T", v)
	}
	return nil
}

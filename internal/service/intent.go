package service

import (
	"strconv"
	"strings"
)

// 聊天指令触发词
const (
	uploadTrigger   = "連線商品"
	queryTrigger    = "查詢訂單"
	queryTriggerAlt = "我的訂單"
)

// Intent 聊天消息解析出的指令，封闭联合类型
type Intent interface {
	isIntent()
}

// OrderIntent 下单指令
type OrderIntent struct {
	Keyword  string
	Quantity int
	Size     string
}

// UploadIntent 商品上架指令（仅限管理员）
type UploadIntent struct {
	Keyword     string
	Name        string
	Description string
	Sizes       []SizeEntry
}

// SizeEntry 上架指令中的尺寸项，可携带内嵌价格
type SizeEntry struct {
	Size  string
	Price int
}

// QueryIntent 查询个人订单指令
type QueryIntent struct{}

func (OrderIntent) isIntent()  {}
func (UploadIntent) isIntent() {}
func (QueryIntent) isIntent()  {}

// splitLabel 拆出标签分隔符后的值，兼容全角「：」与半角「:」
func splitLabel(line string) string {
	idx := strings.IndexAny(line, "：:")
	if idx < 0 {
		return ""
	}
	sep := 1
	if strings.HasPrefix(line[idx:], "：") {
		sep = len("：")
	}
	return strings.TrimSpace(line[idx+sep:])
}

// labelValue 当行携带指定标签时返回其值
func labelValue(line, label string) (string, bool) {
	if !strings.Contains(line, label+"：") && !strings.Contains(line, label+":") {
		return "", false
	}
	return splitLabel(line), true
}

// splitSizes 拆分尺寸列表，分隔符为空格、半角逗号与顿号
func splitSizes(raw string) []SizeEntry {
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ' ' || r == ',' || r == '、'
	})
	entries := make([]SizeEntry, 0, len(fields))
	for _, field := range fields {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		entry := SizeEntry{Size: field}
		if idx := strings.IndexAny(field, "：:"); idx >= 0 {
			entry.Size = strings.TrimSpace(field[:idx])
			rest := strings.TrimLeft(field[idx:], "：:")
			if price, err := strconv.Atoi(strings.TrimSpace(rest)); err == nil && price >= 0 {
				entry.Price = price
			}
		}
		if entry.Size == "" {
			continue
		}
		entries = append(entries, entry)
	}
	return entries
}

// ParseIntent 将入站文本归类为指令，无法识别时返回 nil
func ParseIntent(text string) Intent {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	if text == queryTrigger || text == queryTriggerAlt {
		return QueryIntent{}
	}

	if strings.HasPrefix(text, uploadTrigger) {
		return parseUploadIntent(text)
	}

	if strings.HasPrefix(text, "代號：") || strings.HasPrefix(text, "代號:") {
		return parseOrderIntent(text)
	}
	return nil
}

func parseOrderIntent(text string) Intent {
	intent := OrderIntent{Quantity: 1}
	for _, line := range strings.Split(text, "\n") {
		if value, ok := labelValue(line, "代號"); ok {
			intent.Keyword = strings.ToUpper(value)
		} else if value, ok := labelValue(line, "數量"); ok {
			if qty, err := strconv.Atoi(value); err == nil && qty > 0 {
				intent.Quantity = qty
			}
		} else if value, ok := labelValue(line, "尺寸"); ok {
			intent.Size = value
		}
	}
	if intent.Keyword == "" {
		return nil
	}
	return intent
}

func parseUploadIntent(text string) Intent {
	var intent UploadIntent
	for _, line := range strings.Split(text, "\n") {
		if value, ok := labelValue(line, "代號"); ok {
			intent.Keyword = strings.ToUpper(value)
		} else if value, ok := labelValue(line, "商品名"); ok {
			intent.Name = value
		} else if value, ok := labelValue(line, "size"); ok {
			intent.Sizes = splitSizes(value)
		} else if value, ok := labelValue(line, "商品描述"); ok {
			if value != "無" {
				intent.Description = value
			}
		}
	}
	if intent.Keyword == "" || intent.Name == "" {
		return nil
	}
	return intent
}

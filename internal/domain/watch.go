package domain

// WatchType 是封闭的更种枚举，内部一律使用原始缩写作为唯一标识，
// 任何展示层的翻译都不允许参与相等性判断或规则查表
type WatchType string

const (
	WatchAF   WatchType = "AF"
	WatchYF   WatchType = "YF"
	WatchYFM  WatchType = "YFM"
	WatchBYFM WatchType = "BYFM"
	WatchBYF  WatchType = "BYF"
)

// WatchTypes 按排班优先级排列，调度器严格按这个顺序处理每一天的各个更
var WatchTypes = []WatchType{WatchAF, WatchYF, WatchYFM, WatchBYFM, WatchBYF}

var validWatchTypes = func() map[WatchType]bool {
	m := make(map[WatchType]bool, len(WatchTypes))
	for _, w := range WatchTypes {
		m[w] = true
	}
	return m
}()

func (w WatchType) IsValid() bool {
	return validWatchTypes[w]
}

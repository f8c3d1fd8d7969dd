package catalog

import (
	"strings"

	"QuoteBoard/internal/model"
)

// Stocks lists Hang Seng Index constituents, heaviest weights first.
var Stocks = []model.Stock{
	{Code: "0700", Name: "腾讯控股", Symbol: "0700.HK"},
	{Code: "9988", Name: "阿里巴巴-W", Symbol: "9988.HK"},
	{Code: "0005", Name: "汇丰控股", Symbol: "0005.HK"},
	{Code: "3690", Name: "美团-W", Symbol: "3690.HK"},
	{Code: "1299", Name: "友邦保险", Symbol: "1299.HK"},
	{Code: "0939", Name: "建设银行", Symbol: "0939.HK"},
	{Code: "1810", Name: "小米集团-W", Symbol: "1810.HK"},
	{Code: "0941", Name: "中国移动", Symbol: "0941.HK"},
	{Code: "0388", Name: "香港交易所", Symbol: "0388.HK"},
	{Code: "1398", Name: "工商银行", Symbol: "1398.HK"},
	{Code: "2318", Name: "中国平安", Symbol: "2318.HK"},
	{Code: "9618", Name: "京东集团-SW", Symbol: "9618.HK"},
	{Code: "3988", Name: "中国银行", Symbol: "3988.HK"},
	{Code: "1211", Name: "比亚迪股份", Symbol: "1211.HK"},
	{Code: "0883", Name: "中国海洋石油", Symbol: "0883.HK"},
	{Code: "9999", Name: "网易-S", Symbol: "9999.HK"},
	{Code: "2628", Name: "中国人寿", Symbol: "2628.HK"},
	{Code: "0857", Name: "中国石油股份", Symbol: "0857.HK"},
	{Code: "0386", Name: "中国石油化工股份", Symbol: "0386.HK"},
	{Code: "0001", Name: "长和", Symbol: "0001.HK"},
	{Code: "0016", Name: "新鸿基地产", Symbol: "0016.HK"},
	{Code: "0027", Name: "银河娱乐", Symbol: "0027.HK"},
	{Code: "0002", Name: "中电控股", Symbol: "0002.HK"},
	{Code: "0003", Name: "香港中华煤气", Symbol: "0003.HK"},
	{Code: "0011", Name: "恒生银行", Symbol: "0011.HK"},
	{Code: "0066", Name: "港铁公司", Symbol: "0066.HK"},
	{Code: "1109", Name: "华润置地", Symbol: "1109.HK"},
	{Code: "2020", Name: "安踏体育", Symbol: "2020.HK"},
	{Code: "0267", Name: "中信股份", Symbol: "0267.HK"},
	{Code: "9961", Name: "携程集团-S", Symbol: "9961.HK"},
	{Code: "2382", Name: "舜宇光学科技", Symbol: "2382.HK"},
	{Code: "0968", Name: "信义光能", Symbol: "0968.HK"},
	{Code: "1093", Name: "石药集团", Symbol: "1093.HK"},
	{Code: "0669", Name: "创科实业", Symbol: "0669.HK"},
	{Code: "2331", Name: "李宁", Symbol: "2331.HK"},
}

// Indices lists the market indices shown above the table.
var Indices = []model.Index{
	{Symbol: "^HSI", Name: "恒生指数"},
	{Symbol: "^HSCE", Name: "国企指数"},
	{Symbol: "HSTECH.HK", Name: "恒生科技指数"},
}

var byCode = func() map[string]model.Stock {
	m := make(map[string]model.Stock, len(Stocks))
	for _, s := range Stocks {
		m[s.Code] = s
	}
	return m
}()

// Normalize upper-cases a user supplied code. Unknown codes are left-padded
// with zeros to four characters, so "700" becomes "0700".
func Normalize(raw string) string {
	code := strings.ToUpper(strings.TrimSpace(raw))
	if _, ok := byCode[code]; ok {
		return code
	}
	if n := len(code); n < 4 {
		code = strings.Repeat("0", 4-n) + code
	}
	return code
}

// Symbol returns the exchange ticker for a normalized code.
func Symbol(code string) string {
	return code + ".HK"
}

// Name returns the display name of a tracked code.
func Name(code string) (string, bool) {
	s, ok := byCode[code]
	return s.Name, ok
}

// Top returns the first n stocks, n clamped to [1, len(Stocks)].
func Top(n int) []model.Stock {
	n = max(1, min(n, len(Stocks)))
	return Stocks[:n]
}

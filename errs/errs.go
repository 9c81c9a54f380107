// Copyright 2025 Zintix Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package errs

import (
	"errors"
	"fmt"
)

// Kind : 建構期驗證失敗的分類，使呼叫端理解「哪一類約束」被違反。
//
// 注意：此列舉未封閉，之後的版本可能新增分類。
// 呼叫端請使用 IsKind / KindOf 判斷，switch 時務必保留 default 分支。
type Kind uint8

const (
	// KindNone 非驗證錯誤（wrap 外部錯誤時的預設值）。
	KindNone Kind = iota
	// KindNonFinite 參數含 NaN 或 ±Inf。
	KindNonFinite
	// KindOutOfDomain 參數超出該分布的數學定義域（負的 scale、機率不在 [0,1] 等）。
	KindOutOfDomain
	// KindDegenerate 退化輸入（空權重序列、全零權重、長度不足的濃度向量）。
	KindDegenerate
	// KindOverflow 參數組合會使內部運算溢位（權重總和、n 過大等）。
	KindOverflow
)

var kindMap = map[Kind]string{
	KindNone:        "",
	KindNonFinite:   "non-finite",
	KindOutOfDomain: "out-of-domain",
	KindDegenerate:  "degenerate",
	KindOverflow:    "overflow",
}

func KindStr(k Kind) string {
	if str, ok := kindMap[k]; ok {
		return str
	}
	return ""
}

// E 是統一的錯誤型別。
// Message 為經過樣板格式化後的主訊息；Extra 為呼叫端可追加的額外上下文；
// Cause 可串接下層錯誤（wrap）；Kind 表示違反的約束分類。
type E struct {
	Message string
	Extra   string
	Cause   error
	Kind    Kind
}

// Error 實作 error 介面並回傳格式化後的錯誤訊息。
func (e *E) Error() string {
	base := e.Message
	if k := KindStr(e.Kind); k != "" {
		base = fmt.Sprintf("kind=%s %s", k, e.Message)
	}
	if e.Extra != "" {
		base += " | extra: " + e.Extra
	}
	if e.Cause != nil {
		base += fmt.Sprintf(" (cause: %v)", e.Cause)
	}
	return base
}

// Unwrap 讓 errors.Is / errors.As 能夠向下展開。
func (e *E) Unwrap() error { return e.Cause }

// New 依分類與訊息建立錯誤
func New(kind Kind, msg string) *E {
	return &E{Message: msg, Kind: kind}
}

func NonFinitef(format string, a ...any) *E {
	return New(KindNonFinite, fmt.Sprintf(format, a...))
}

func OutOfDomainf(format string, a ...any) *E {
	return New(KindOutOfDomain, fmt.Sprintf(format, a...))
}

func Degeneratef(format string, a ...any) *E {
	return New(KindDegenerate, fmt.Sprintf(format, a...))
}

func Overflowf(format string, a ...any) *E {
	return New(KindOverflow, fmt.Sprintf(format, a...))
}

// NewWithExtra 與 New 相同，但可附加額外上下文字串（不影響主訊息）。
func NewWithExtra(kind Kind, msg string, extra string) *E {
	e := New(kind, msg)
	e.Extra = extra
	return e
}

// Wrap 使用給定的訊息包裝底層錯誤，建立一個 *E。
//
// Kind 規則：
//   - 若 cause 已經是 *E，則沿用其 Kind（保持原本分類）。
//   - 若 cause 不是本包定義的 *E（多半是標準庫或三方依賴錯誤），則 Kind 為 KindNone。
func Wrap(cause error, msg string) *E {
	var e *E
	kind := KindNone
	if errors.As(cause, &e) {
		kind = e.Kind
	}
	r := New(kind, msg)
	r.Cause = cause
	return r
}

// KindOf 取出錯誤的分類；非 *E 錯誤回傳 KindNone。
func KindOf(err error) Kind {
	var e *E
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindNone
}

// IsKind 判斷錯誤（或其包裝鏈）是否屬於指定分類。
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}

func AsErr(err error) (*E, bool) {
	var e *E
	if errors.As(err, &e) {
		return e, true
	}
	return e, false
}

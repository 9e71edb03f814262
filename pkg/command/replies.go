package command

import (
	"strings"

	"github.com/daleelhq/daleel/pkg/contact"
)

// Replies are the fixed reply strings, one per dispatch branch. The
// defaults are the Arabic texts of the original WhatsApp bot.
type Replies struct {
	Added        string `yaml:"added"`
	Duplicate    string `yaml:"duplicate"`
	UsageAdd     string `yaml:"usage_add"`
	UsageSearch  string `yaml:"usage_search"`
	NoResults    string `yaml:"no_results"`
	ResultsHead  string `yaml:"results_head"`
	Help         string `yaml:"help"`
	Unknown      string `yaml:"unknown"`
	NotSupported string `yaml:"not_supported"`
	Failure      string `yaml:"failure"`
}

// DefaultReplies returns the reply set of the original bot.
func DefaultReplies() Replies {
	return Replies{
		Added:        "✅ تم الإضافة",
		Duplicate:    "⚠️ موجود مسبقاً",
		UsageAdd:     "❌ استخدم التنسيق: أضف الشركة, الاسم, الجوال, الإيميل",
		UsageSearch:  "❌ اكتب اسم الشركة بعد كلمة ابحث",
		NoResults:    "❌ لا توجد نتائج.",
		ResultsHead:  "🗂️ نتائج البحث:",
		Help:         "🛠️ الأوامر المتاحة:\n- أضف الشركة, الاسم, الجوال, الإيميل\n- ابحث اسم_الشركة",
		Unknown:      "❓ لم أفهم. أرسل 'مساعدة' لرؤية الأوامر المتاحة.",
		NotSupported: "🚧 هذه العملية غير مدعومة بعد.",
		Failure:      "⚠️ حدث خطأ",
	}
}

func (r Replies) withDefaults() Replies {
	def := DefaultReplies()
	fill := func(dst *string, fallback string) {
		if *dst == "" {
			*dst = fallback
		}
	}
	fill(&r.Added, def.Added)
	fill(&r.Duplicate, def.Duplicate)
	fill(&r.UsageAdd, def.UsageAdd)
	fill(&r.UsageSearch, def.UsageSearch)
	fill(&r.NoResults, def.NoResults)
	fill(&r.ResultsHead, def.ResultsHead)
	fill(&r.Help, def.Help)
	fill(&r.Unknown, def.Unknown)
	fill(&r.NotSupported, def.NotSupported)
	fill(&r.Failure, def.Failure)
	return r
}

// results renders the search result list, one record per line.
func (r Replies) results(records []contact.Record) string {
	lines := make([]string, 0, len(records)+1)
	lines = append(lines, r.ResultsHead)
	for _, rec := range records {
		lines = append(lines, rec.Line())
	}
	return strings.Join(lines, "\n")
}

// failure renders the generic error reply with a short diagnostic.
func (r Replies) failure(diag string) string {
	return r.Failure + ": " + diag
}

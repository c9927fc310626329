package score

import "github.com/kampuschat/kampuschat/internal/model"

// Table maps intents to their keyword lists. Immutable after construction;
// iteration always follows the declared intent order so score ties resolve
// to the first intent in table order.
type Table struct {
	order    []model.Intent
	keywords map[model.Intent][]string
}

// NewTable builds a table preserving the given intent order.
func NewTable(order []model.Intent, keywords map[model.Intent][]string) *Table {
	return &Table{order: order, keywords: keywords}
}

// Intents returns the table's intent order.
func (t *Table) Intents() []model.Intent { return t.order }

// Keywords returns the keyword list for an intent.
func (t *Table) Keywords(intent model.Intent) []string { return t.keywords[intent] }

// TotalKeywords counts keywords across all intents.
func (t *Table) TotalKeywords() int {
	total := 0
	for _, words := range t.keywords {
		total += len(words)
	}
	return total
}

// DefaultTable returns the built-in campus keyword patterns.
func DefaultTable() *Table {
	return NewTable(
		[]model.Intent{
			model.IntentSchedule,
			model.IntentPayment,
			model.IntentPassword,
			model.IntentCampusInfo,
			model.IntentSmalltalk,
		},
		map[model.Intent][]string{
			model.IntentSchedule: {
				"jadwal", "kuliah", "kelas", "mata kuliah", "matkul",
				"jam", "ruang", "dosen", "ujian", "uts", "uas",
				"semester", "hari", "waktu", "schedule", "class",
				"course", "lecture", "exam", "midterm", "final",
			},
			model.IntentPayment: {
				"bayar", "ukt", "pembayaran", "biaya", "cicilan",
				"tagihan", "lunas", "transfer", "virtual account",
				"va", "spp", "keuangan", "payment", "fee",
				"tuition", "installment", "billing", "finance",
			},
			model.IntentPassword: {
				"password", "kata sandi", "login", "akun", "reset",
				"lupa", "forgot", "masuk", "sign in", "account",
				"username", "user", "auth", "authentication",
				"access", "credentials", "recover",
			},
			model.IntentCampusInfo: {
				"informasi", "info", "beasiswa", "wisuda", "pkl",
				"skripsi", "thesis", "magang", "cuti", "akademik",
				"transkrip", "nilai", "grade", "graduation",
				"scholarship", "internship", "academic", "transcript",
			},
			model.IntentSmalltalk: {
				"halo", "hai", "selamat", "terima kasih", "tolong",
				"bantuan", "hello", "hi", "thanks", "help",
				"morning", "pagi", "siang", "malam", "good",
				"please", "sorry", "excuse", "welcome",
			},
		},
	)
}

package respond

import "github.com/kampuschat/kampuschat/internal/model"

// Templates holds the canned replies for conversational intents.
var Templates = map[model.Intent][]string{
	model.IntentSchedule: {
		"Untuk melihat jadwal kuliah, silakan login ke portal akademik atau hubungi bagian akademik.",
		"Jadwal kuliah dapat dilihat di sistem informasi akademik. Apakah ada mata kuliah tertentu yang ingin ditanyakan?",
		"Silakan cek jadwal terbaru di portal mahasiswa atau hubungi koordinator program studi Anda.",
	},
	model.IntentPayment: {
		"Untuk pembayaran UKT, silakan login ke portal keuangan atau kunjungi bank mitra kampus.",
		"Pembayaran dapat dilakukan melalui virtual account yang tersedia di portal mahasiswa.",
		"Hubungi bagian keuangan untuk informasi lebih lanjut tentang pembayaran semester.",
	},
	model.IntentPassword: {
		"Untuk reset password, silakan kunjungi halaman reset password di portal atau hubungi IT support.",
		"Anda dapat mereset password melalui email recovery atau hubungi admin sistem.",
		"Silakan hubungi helpdesk IT dengan membawa KTM untuk reset password akun Anda.",
	},
	model.IntentCampusInfo: {
		"Informasi lengkap tersedia di website resmi kampus atau hubungi bagian kemahasiswaan.",
		"Silakan kunjungi pusat informasi mahasiswa atau check website resmi untuk info terbaru.",
		"Untuk informasi lebih detail, hubungi bagian terkait atau kunjungi kantor kemahasiswaan.",
	},
	model.IntentSmalltalk: {
		"Halo! Saya siap membantu Anda dengan informasi seputar kampus.",
		"Hai! Ada yang bisa saya bantu hari ini?",
		"Selamat datang! Silakan tanyakan apa saja yang ingin Anda ketahui.",
	},
}

// GenericTemplate answers conversational intents that have no template set.
const GenericTemplate = "I understand you're trying to communicate. How can I help you better?"

// FallbackMessages are the base apology/clarification replies.
var FallbackMessages = []string{
	"I'm not entirely sure about that. Could you please rephrase your question or provide more details?",
	"I didn't quite understand your question. Could you try asking it differently?",
	"I'm still learning about that topic. Can you be more specific about what you'd like to know?",
	"That's an interesting question, but I'm not confident in my answer. Could you provide more context?",
	"I want to make sure I give you accurate information. Could you clarify what you're looking for?",
}

// Context-aware fallback hints.
const (
	BriefInputHint   = "Your question seems quite brief. Could you provide more details about what you're looking for?"
	NoQuestionHint   = "I notice your message doesn't contain a question mark. Are you asking a question or making a statement?"
	EmergencyMessage = "I apologize, but I'm experiencing technical difficulties. Please try again later."
)

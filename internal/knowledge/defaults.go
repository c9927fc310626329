package knowledge

import "github.com/kampuschat/kampuschat/internal/model"

// DefaultStore returns the built-in campus contexts, used when no knowledge
// file is configured.
func DefaultStore() *Store {
	return NewStore([]Record{
		{
			Intent:   model.IntentSchedule,
			Category: "akademik",
			Text: "Universitas memiliki sistem informasi akademik yang dapat diakses melalui portal mahasiswa. " +
				"Jadwal kuliah tersedia setiap semester dan dapat dilihat berdasarkan program studi. " +
				"Kuliah dimulai pukul 07.00 WIB hingga 21.00 WIB dari Senin sampai Sabtu. " +
				"Ujian Tengah Semester (UTS) biasanya dilaksanakan pada minggu ke-8, sedangkan Ujian Akhir Semester (UAS) pada minggu ke-16. " +
				"Ruang kuliah tersebar di berbagai gedung dengan kode A, B, C, dan D. " +
				"Setiap mata kuliah memiliki dosen pengampu yang dapat dihubungi melalui sistem akademik.",
		},
		{
			Intent:   model.IntentCampusInfo,
			Category: "akademik",
			Text: "Informasi beasiswa tersedia di website resmi universitas dan bagian kemahasiswaan. " +
				"Pendaftaran PKL dibuka setiap semester dengan syarat minimal 100 SKS telah lulus. " +
				"Wisuda dilaksanakan 2 kali dalam setahun yaitu bulan Juli dan Desember. " +
				"Syarat wisuda meliputi IPK minimal 2.75 dan telah menyelesaikan semua mata kuliah. " +
				"Transkrip nilai dapat diurus di bagian akademik dengan membawa persyaratan lengkap.",
		},
		{
			Intent:   model.IntentPayment,
			Category: "layanan",
			Text: "Uang Kuliah Tunggal (UKT) dibayar setiap semester melalui virtual account yang tersedia di portal keuangan. " +
				"Pembayaran dapat dilakukan melalui bank mitra seperti BNI, BRI, Mandiri, dan BCA. " +
				"Batas waktu pembayaran UKT adalah tanggal 15 setiap bulannya. " +
				"Tersedia sistem cicilan untuk mahasiswa yang membutuhkan dengan syarat tertentu. " +
				"Biaya UKT bervariasi berdasarkan program studi dan golongan UKT mahasiswa. " +
				"Status pembayaran dapat dicek melalui portal keuangan mahasiswa.",
		},
		{
			Intent:   model.IntentPassword,
			Category: "layanan",
			Text: "Password akun mahasiswa dapat direset melalui halaman forgot password di portal akademik. " +
				"Mahasiswa perlu memasukkan NIM dan email yang terdaftar untuk mendapat link reset. " +
				"Alternatif lain adalah menghubungi IT support di lantai 1 gedung A dengan membawa KTM. " +
				"Password baru harus mengandung minimal 8 karakter dengan kombinasi huruf dan angka. " +
				"Akun akan terkunci otomatis setelah 5 kali salah password.",
		},
	})
}

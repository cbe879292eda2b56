// file: internals/features/ai/collection/service/topic_gate.go
package service

import "strings"

// Agent ini hanya melayani pertanyaan seputar penagihan sekolah.
// Pertanyaan lain ditolak sebelum menyentuh model.
var onTopicKeywords = []string{
	"invoice", "payment", "pay", "paid", "overdue", "debt", "balance",
	"collect", "collection", "outstanding", "pending", "due",
	"tuition", "fee", "bill", "billing", "school", "student", "grade",
	"tagihan", "pembayaran", "bayar", "tunggakan", "saldo", "sekolah",
	"siswa", "spp",
}

func IsOnTopic(question string) bool {
	q := strings.ToLower(question)
	for _, kw := range onTopicKeywords {
		if strings.Contains(q, kw) {
			return true
		}
	}
	return false
}

const offTopicAnswer = "I can only help with school billing and collections: invoices, payments, overdue balances, and collection strategy. Please rephrase your question around those topics."

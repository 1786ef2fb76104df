package notificacao

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"
	"os"
)

// EnviarAlertaAprovacao avisa o canal configurado que comissões foram
// enviadas para aprovação. Falha de envio só é logada: o workflow nunca
// depende do webhook.
func EnviarAlertaAprovacao(quantidade int, enviadoPor string) {
	url := os.Getenv("WEBHOOK_APROVACAO_URL")
	if url == "" {
		return
	}

	payload := map[string]interface{}{
		"mensagem":   "Comissões enviadas para aprovação",
		"quantidade": quantidade,
		"enviadoPor": enviadoPor,
	}
	body, _ := json.Marshal(payload)

	resp, err := http.Post(url, "application/json", bytes.NewBuffer(body))
	if err != nil {
		log.Printf("Erro ao enviar webhook: %v", err)
		return
	}
	defer resp.Body.Close()
}

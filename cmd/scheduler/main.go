package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	"github.com/youngemp/comissoes-api/internal/config"
	"github.com/youngemp/comissoes-api/internal/sincronizacao"
	"github.com/youngemp/comissoes-api/internal/utils/db"
)

func horarioDeEnv() (int, int) {
	hora := 3
	minuto := 0
	if v, err := strconv.Atoi(os.Getenv("SYNC_HOUR")); err == nil && v >= 0 && v <= 23 {
		hora = v
	}
	if v, err := strconv.Atoi(os.Getenv("SYNC_MINUTE")); err == nil && v >= 0 && v <= 59 {
		minuto = v
	}
	return hora, minuto
}

func main() {
	godotenv.Load()
	log := config.GetLogger()

	database, err := db.GetDB()
	if err != nil {
		log.WithError(err).Fatal("erro ao conectar no banco")
	}

	handler := sincronizacao.NewHandler(database)
	hora, minuto := horarioDeEnv()
	expressao := fmt.Sprintf("%d %d * * *", minuto, hora)

	c := cron.New()
	_, err = c.AddFunc(expressao, func() {
		log.Info("sincronização agendada iniciada")
		if _, err := handler.Sincronizador.SincronizarTudo(""); err != nil {
			log.WithError(err).Error("sincronização agendada com erros")
			return
		}
		if _, err := handler.Limpeza.LimparDuplicadas(); err != nil {
			log.WithError(err).Error("limpeza de duplicadas falhou")
		}
		if _, err := handler.Limpeza.MarcarOrfas(); err != nil {
			log.WithError(err).Error("marcação de órfãs falhou")
		}
		log.Info("sincronização agendada concluída")
	})
	if err != nil {
		log.WithError(err).Fatal("expressão de agendamento inválida")
	}

	log.WithField("horario", fmt.Sprintf("%02d:%02d", hora, minuto)).Info("agendador iniciado")
	c.Run()
}

package utils

import (
	"crypto/rand"
	"math/big"

	"golang.org/x/crypto/bcrypt"
)

// tamanho das senhas temporárias emitidas no cadastro de usuários
const tamanhoSenhaTemporaria = 12

const alfabetoSenha = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// HashSenha gera um hash bcrypt para a senha informada.
func HashSenha(senha string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(senha), bcrypt.DefaultCost)
	return string(hash), err
}

// VerificarSenha compara hash bcrypt com a senha em texto puro.
func VerificarSenha(hash, senha string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(senha))
	return err == nil
}

// GerarSenhaTemporaria gera a senha inicial de um usuário criado sem senha
// no payload. Alfanumérica, gerada com crypto/rand.
func GerarSenhaTemporaria() (string, error) {
	senha := make([]byte, tamanhoSenhaTemporaria)
	for i := range senha {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(alfabetoSenha))))
		if err != nil {
			return "", err
		}
		senha[i] = alfabetoSenha[n.Int64()]
	}
	return string(senha), nil
}

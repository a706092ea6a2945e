package generator

import (
	"fmt"
	"strings"
)

func planPrompt(req LessonPlanRequest) string {
	var b strings.Builder
	b.WriteString("Atue como uma coordenadora pedagógica experiente.\n")
	fmt.Fprintf(&b, "Crie um plano de aula detalhado para alunos do %s sobre o tema \"%s\" na disciplina de %s.\n",
		req.GradeLevel, req.Theme, req.Subject)
	fmt.Fprintf(&b, "A aula dura %d minutos e o nível da turma é: %s.\n", req.Duration, req.Level)
	if req.Objective != "" {
		fmt.Fprintf(&b, "O objetivo principal deve ser: %s\n", req.Objective)
	}
	b.WriteString("O plano deve ser criativo, lúdico e adequado à idade.")
	return b.String()
}

func activityPrompt(req ActivityRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Crie uma folha de atividades escolar para o %s.\n", req.GradeLevel)
	fmt.Fprintf(&b, "Disciplina: %s. Tema: %s. Tipo de exercício: %s.\n", req.Subject, req.Theme, req.Type)
	fmt.Fprintf(&b, "Nível de dificuldade: %s. Gere exatamente %d questões.\n", req.Level, req.Count)
	b.WriteString("Formate o conteúdo das questões com linhas pontilhadas (______) onde o aluno deve escrever.\n")
	b.WriteString("Se for 'Ligue', use formatos como 'A) Item --- 1) Definição'.")
	if req.Guideline != "" {
		fmt.Fprintf(&b, "\nOrientação da professora: %s", req.Guideline)
	}
	return b.String()
}

package tips

// DefaultTips es la lista con la que arranca el servicio si la configuración no trae otra.
var DefaultTips = []string{
	"Escove os dentes do seu pet diariamente com pasta específica para animais. A saúde bucal previne doenças graves e mau hálito.",
	"Mantenha uma rotina de alimentação com horários fixos e porções adequadas ao tamanho, idade e nível de atividade do seu pet.",
	"Evite dar alimentos humanos, especialmente chocolate, cebola, alho, uva, passas e adoçantes como xilitol, que são tóxicos.",
	"A transição entre rações deve ser feita gradualmente ao longo de 7-10 dias para evitar problemas digestivos.",
	"Mantenha sempre água fresca e limpa disponível. Troque a água pelo menos duas vezes ao dia para incentivar a hidratação.",
	"Cães precisam de pelo menos 30 minutos a 2 horas de exercícios diários, dependendo da raça e idade.",
	"Mantenha em dia a vacinação e o controle de parasitas (pulgas, carrapatos e vermes) conforme orientação do veterinário.",
	"Nunca deixe seu pet sozinho no carro, mesmo com os vidros abertos. A temperatura pode subir rapidamente e causar hipertermia.",
	"Use coleira com identificação e considere a microchipagem para aumentar as chances de reencontro em caso de fuga ou perda.",
	"Pets idosos precisam de check-ups veterinários mais frequentes, pelo menos a cada 6 meses.",
	"Mudanças súbitas no comportamento podem indicar problemas de saúde. Consulte um veterinário se notar algo incomum.",
	"Gatos precisam de pelo menos uma caixa de areia por gato, mais uma extra, em locais tranquilos e de fácil acesso.",
	"Nunca medique seu pet sem orientação veterinária. Medicamentos humanos podem ser altamente tóxicos para animais.",
}

// fallbackTips se usan cuando la dica elegida viene vacía.
var fallbackTips = []string{
	"A escovação diária dos dentes do seu pet pode prevenir doenças periodontais graves.",
	"A vacinação anual é essencial para prevenir doenças como raiva e cinomose.",
	"Mantenha sempre água limpa e fresca disponível para o seu pet.",
	"A obesidade em pets pode reduzir significativamente a expectativa de vida.",
	"Consulte regularmente um médico veterinário para check-ups preventivos.",
}

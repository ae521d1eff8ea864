package prompt

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/ppiankov/maarifplan/internal/model"
)

// DefaultVideoStructure is used when the brief names no structure
const DefaultVideoStructure = "2 bölüm"

const maxVideoSections = 6

var sectionCountPattern = regexp.MustCompile(`(\d+)\s*bölüm`)

// VideoSections reads the section count from a structure such as
// "3 bölüm". Unreadable structures yield 2.
func VideoSections(structure string) int {
	m := sectionCountPattern.FindStringSubmatch(strings.ToLower(structure))
	if m == nil {
		return 2
	}
	n, err := strconv.Atoi(m[1])
	if err != nil || n < 1 {
		return 2
	}
	if n > maxVideoSections {
		return maxVideoSections
	}
	return n
}

const videoPhilosophy = `2. İÇERİK FELSEFESİ VE BEKLENTİLER

Yaş Grubuna Uygunluk (En Önemli Kural): Yaş grubunun (%[1]s) bilişsel, dil ve motor gelişim özelliklerini mutlaka göz önünde bulundur. Kelimeler, cümle uzunluğu, kavramların derinliği ve etkinliklerin karmaşıklığı yaş grubuna göre belirgin şekilde farklılaşmalıdır.

Hikayeleştirme ve Benzetmeler: Soyut kavramları somutlaştırmak için hikayeler, masallar ve çocukların dünyasından basit benzetmeler kullan (örneğin 3 rakamını kelebek kanadına benzetmek). Konuyu bir ders gibi değil, bir macera veya keşif gibi sun.

Etkileşim: Video pasif bir izleme deneyimi olmamalıdır.
- Fiziksel Hareket: Çocukları bedenleriyle veya parmaklarıyla bir şeyler yapmaya teşvik et (havaya çizim yapma, bir hayvanı taklit etme).
- Bilişsel Katılım: Bilmeceler ve "Sizce ne olacak?" gibi tahmin soruları sor.
- Yaratıcı Düşünme: Videoyu çocukları hayal kurmaya veya bir problemi çözmeye yönlendiren açık uçlu bir soruyla bitir.

Bölüm Akışı: İlk bölümde konu tanıtılır, temel özellikleri somut örneklerle açıklanır ve bölüm fiziksel bir oyun, bilmece veya etkinlikle biter. Sonraki bölümlerde konu derinleştirilir, günlük yaşamla ve başka alanlarla (sanat, bilim, doğa) bağlantı kurulur.

%[2]s'ın Karakteri ve Tonu: %[2]s didaktik bir öğretmen değil; sıcak, sevecen, meraklı bir arkadaş ve keşif lideridir. Sesi her zaman pozitif, teşvik edici ve enerjiktir.

Dil Kullanımı:
- Asla "Anladınız mı?" gibi sorgulayıcı ifadeler kullanma; "Harikasınız!", "Bravo size!" gibi pozitif pekiştireçler kullan.
- Doğa olaylarına veya nesnelere olumsuz insani özellikler yükleme ("yaramaz rüzgar" yerine "güçlü rüzgar" de).
`

// VideoSubject prefers the brief subject, then the outcome subjects
func VideoSubject(brief *model.VideoBrief, outcomes []model.LearningOutcome) string {
	if brief != nil && strings.TrimSpace(brief.Subject) != "" {
		return brief.Subject
	}
	return strings.Join(subjects(outcomes), ", ")
}

func buildVideo(ctx Context) string {
	brief := model.VideoBrief{}
	if ctx.Video != nil {
		brief = *ctx.Video
	}
	if strings.TrimSpace(brief.Structure) == "" {
		brief.Structure = DefaultVideoStructure
	}
	subject := VideoSubject(ctx.Video, ctx.Outcomes)
	narrator := model.DefaultNarrator
	sections := VideoSections(brief.Structure)

	var b strings.Builder
	fmt.Fprintf(&b, "Merhabalar, senden dijital bir okul öncesi platformu için bir \"Konu Anlatım Videosu\" metni hazırlamanı istiyorum. Bu metin, okul öncesi eğitim programı kapsamında kullanılacak ve %s adında bir karakter tarafından seslendirilecektir.\n\n", narrator)

	b.WriteString("BÖLÜM 1: TEMEL BİLGİLER\n")
	fmt.Fprintf(&b, "Ders: %s\n", subject)
	fmt.Fprintf(&b, "Konu: %s\n", brief.Topic)
	fmt.Fprintf(&b, "Hedef Yaş Grubu: %s\n\n", ctx.AgeGroup)

	b.WriteString("İlgili Kazanımlar:\n")
	for _, o := range ctx.Outcomes {
		fmt.Fprintf(&b, "- %s - %s\n", o.AreaSkill, o.Outcome)
	}

	b.WriteString("\nBÖLÜM 2: İÇERİK DETAYLARI VE ÖZEL İSTEKLER\n")
	fmt.Fprintf(&b, "Video Yapısı: %s\n", brief.Structure)
	if brief.SectionActivity != "" {
		fmt.Fprintf(&b, "Bölüm Sonu Etkinliği: %s\n", brief.SectionActivity)
	}
	if brief.Emphasis != "" {
		fmt.Fprintf(&b, "Vurgulanmasını İstediğiniz Özel Noktalar: %s\n", brief.Emphasis)
	}
	if brief.Avoid != "" {
		fmt.Fprintf(&b, "Kaçınılmasını İstediğiniz Noktalar: %s\n", brief.Avoid)
	}
	if strings.TrimSpace(ctx.CustomInstructions) != "" {
		fmt.Fprintf(&b, "Öğretmenin Ek İstekleri: %s\n", ctx.CustomInstructions)
	}

	b.WriteString("\nBu bilgilere dayanarak aşağıdaki format ve içerik felsefesine harfiyen uy.\n\n")
	b.WriteString("1. GENEL FORMAT\n\n")
	fmt.Fprintf(&b, "[Video Başlığı]\nDers: %s\nHedef Yaş Grubu: %s\nVideo Süresi: (Yaklaşık olarak belirt)\nKarakter: %s (Anlatıcı)\n\n", subject, ctx.AgeGroup, narrator)
	for i := 1; i <= sections; i++ {
		fmt.Fprintf(&b, "%d. BÖLÜM: [Bölüm Başlığı]\n1. Arka Plan (Görsel ve Müzik):\n2. Seslendiren Karakter (%s):\n3. Metin (%s'ın Anlatımı):\n\n", i, narrator, narrator)
	}
	fmt.Fprintf(&b, "ÖNEMLİ FORMAT KURALI: %s'ın konuşmaları sırasında, arka planda o an ne olması gerektiğini **(Parantez içinde, kalın harflerle)** anlık görsel veya eylem yönlendirmeleri olarak ekle.\n\n", narrator)

	fmt.Fprintf(&b, videoPhilosophy, ctx.AgeGroup, narrator)

	fmt.Fprintf(&b, "\nLütfen yukarıdaki tüm kurallara harfiyen uyarak, %s konusunda bir video metni hazırla.\n\n", brief.Topic)
	b.WriteString("ÖNEMLİ: Çıktını kesinlikle aşağıdaki JSON formatında ver. Başka hiçbir açıklama veya metin ekleme, sadece JSON döndür:\n\n")
	b.WriteString(jsonText(videoTemplate(subject, ctx.AgeGroup, narrator, sections), true))
	b.WriteString("\n")
	return b.String()
}

func videoTemplate(subject, ageGroup, narrator string, sections int) model.VideoScript {
	script := model.VideoScript{
		Title:     "Video Başlığı",
		Subject:   subject,
		AgeGroup:  ageGroup,
		Duration:  "Video süresi dakika olarak (örn: 5)",
		Character: narrator,
	}
	for i := 1; i <= sections; i++ {
		script.Sections = append(script.Sections, model.VideoSection{
			Number: i,
			Title:  fmt.Sprintf("%d. Bölüm Başlığı", i),
			Background: model.VideoBackground{
				Visual: "Arka plan görsel açıklaması",
				Music:  "Arka plan müzik açıklaması",
			},
			Character: narrator,
			Text:      narrator + "'ın bu bölümdeki tüm anlatım metni. **(Parantez içinde görsel yönlendirmeler)** ile birlikte.",
		})
	}
	return script
}

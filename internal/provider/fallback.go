package provider

import (
	"context"
	"fmt"
	"time"

	"github.com/YusukeAsk/016-worldhappynews/pkg/models"
)

const placeholderImage = "https://placehold.co/400x300/f5ead0/8b7355?text=World+Happy+News"

type seedStory struct {
	title   string
	summary string
}

// Compiled-in dataset served when no provider credential is configured.
var seedStories = []seedStory{
	{
		title:   "迷子の子犬、200km歩いて飼い主のもとへ帰還",
		summary: "アメリカ・オレゴン州で行方不明になったゴールデンレトリバーのバディが、3ヶ月かけて200kmを歩き、無事に飼い主の元へ帰ってきました。再会の瞬間、飼い主は涙を流しました。",
	},
	{
		title:   "80歳のパン職人、50年間毎朝子どもたちにパンを無料配布",
		summary: "東京の下町で小さなパン屋を営む佐藤さん（80歳）が、50年間毎朝、近所の子どもたちに焼きたてのパンを無料で配り続けています。「子どもたちの笑顔が一番のご褒美」と語ります。",
	},
	{
		title:   "廃墟を花園に—市民300人の手で生まれ変わった広場",
		summary: "オランダ・アムステルダムの使われなくなった工場跡地が、300人以上のボランティアの手によって美しいコミュニティガーデンに生まれ変わりました。今では地域の憩いの場として親しまれています。",
	},
	{
		title:   "赤ちゃんペンギン、初めての海にドキドキ",
		summary: "南極の研究基地近くで、今年生まれたコウテイペンギンの赤ちゃんたちが初めて海に足を踏み入れる瞬間が撮影されました。おそるおそる水に近づく姿が世界中で話題に。",
	},
	{
		title:   "92歳のバイオリニスト、路上演奏で街を一つに",
		summary: "イタリア・フィレンツェの広場で毎夕方、92歳のマルコさんがバイオリンを演奏しています。その温かい音色に惹かれ、観光客も地元の人も立ち止まり、自然と笑顔の輪が広がっています。",
	},
	{
		title:   "消防士が木の上の子猫を救出、その後家族に",
		summary: "カナダ・バンクーバーで大木に取り残された子猫をレスキューした消防士のジェームズさん。子猫との絆が生まれ、正式に家族として迎え入れることを決めました。名前は「ブレイブ」。",
	},
	{
		title:   "村の学校に届いた1000冊の本と子どもたちの笑顔",
		summary: "ケニアの小さな村の学校に、世界中の支援者から1000冊以上の本が届きました。初めて絵本を手にした子どもたちの輝く目と笑顔が、支援者たちの心を温めています。",
	},
	{
		title:   "夜空に舞う灯籠、願いを込めて",
		summary: "タイ・チェンマイのイーペン祭りで、数千のコムローイ（天灯）が夜空に放たれました。平和と幸福を願う人々の温かい光が、満天の星のように輝きました。",
	},
}

// FallbackFetcher serves the compiled-in dataset. It never fails.
type FallbackFetcher struct{}

func (FallbackFetcher) Fetch(_ context.Context, max int) ([]models.RawArticle, error) {
	now := time.Now().UTC()
	out := make([]models.RawArticle, 0, len(seedStories))
	for i, s := range seedStories {
		if len(out) >= max {
			break
		}
		out = append(out, models.RawArticle{
			Title:       s.title,
			Description: s.summary,
			Content:     s.summary,
			URL:         fmt.Sprintf("https://worldhappynews.example/news/%d", i+1),
			Image:       placeholderImage,
			PublishedAt: now,
			SourceName:  "World Happy News",
		})
	}
	return out, nil
}

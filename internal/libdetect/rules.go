package libdetect

// DefaultRules is the built-in signature table. Adding support for a new
// library is a data change here, not a code change. Rules are independent:
// a single document may trigger many at once.
func DefaultRules() []Rule {
	return []Rule{
		{
			Name:       "bootstrap",
			Signatures: []string{"navbar-expand", "btn btn-", "container-fluid", "data-bs-", "col-md-", "card-body"},
			Resources: []Resource{
				{URL: "https://cdn.jsdelivr.net/npm/bootstrap@5.3.3/dist/css/bootstrap.min.css", Placement: PlacementHead, Tag: TagLink},
				{URL: "https://cdn.jsdelivr.net/npm/bootstrap@5.3.3/dist/js/bootstrap.bundle.min.js", Placement: PlacementBodyClose, Tag: TagScript},
			},
		},
		{
			Name:       "tailwind",
			Signatures: []string{"tailwindcss", "md:grid-cols-", "md:flex", "hover:bg-", "text-4xl", "lg:px-"},
			Resources: []Resource{
				{URL: "https://cdn.tailwindcss.com", Placement: PlacementHead, Tag: TagScript},
			},
		},
		{
			Name:       "jquery",
			Signatures: []string{"$(document).ready", "jQuery(", "$('#", `$(".`},
			Resources: []Resource{
				{URL: "https://code.jquery.com/jquery-3.7.1.min.js", Placement: PlacementBodyClose, Tag: TagScript},
			},
		},
		{
			Name:       "fontawesome",
			Signatures: []string{"fa-solid", "fa-brands", "fa-regular", "fas fa-", "fab fa-", `class="fa `},
			Resources: []Resource{
				{URL: "https://cdnjs.cloudflare.com/ajax/libs/font-awesome/6.5.2/css/all.min.css", Placement: PlacementHead, Tag: TagLink},
			},
		},
		{
			Name:       "chartjs",
			Signatures: []string{"new Chart(", "chart.js"},
			Resources: []Resource{
				{URL: "https://cdn.jsdelivr.net/npm/chart.js@4.4.3/dist/chart.umd.min.js", Placement: PlacementBodyClose, Tag: TagScript},
			},
		},
		{
			Name:       "alpine",
			Signatures: []string{"x-data=", "x-show=", "x-on:", "x-bind:"},
			Resources: []Resource{
				{URL: "https://cdn.jsdelivr.net/npm/alpinejs@3.14.1/dist/cdn.min.js", Placement: PlacementHead, Tag: TagScript, Attrs: "defer"},
			},
		},
		{
			Name:       "vue",
			Signatures: []string{"new Vue(", "createApp(", "v-for=", "v-if=", "v-model="},
			Resources: []Resource{
				{URL: "https://unpkg.com/vue@3.4.31/dist/vue.global.prod.js", Placement: PlacementBodyClose, Tag: TagScript},
			},
		},
		{
			Name:       "aos",
			Signatures: []string{"data-aos="},
			Resources: []Resource{
				{URL: "https://unpkg.com/aos@2.3.4/dist/aos.css", Placement: PlacementHead, Tag: TagLink},
				{URL: "https://unpkg.com/aos@2.3.4/dist/aos.js", Placement: PlacementBodyClose, Tag: TagScript},
			},
		},
		{
			Name:       "swiper",
			Signatures: []string{"swiper-container", "swiper-slide", "swiper-wrapper"},
			Resources: []Resource{
				{URL: "https://cdn.jsdelivr.net/npm/swiper@11/swiper-bundle.min.css", Placement: PlacementHead, Tag: TagLink},
				{URL: "https://cdn.jsdelivr.net/npm/swiper@11/swiper-bundle.min.js", Placement: PlacementBodyClose, Tag: TagScript},
			},
		},
		{
			Name:       "animate-css",
			Signatures: []string{"animate__"},
			Resources: []Resource{
				{URL: "https://cdnjs.cloudflare.com/ajax/libs/animate.css/4.1.1/animate.min.css", Placement: PlacementHead, Tag: TagLink},
			},
		},
		{
			Name:       "gsap",
			Signatures: []string{"gsap.to(", "gsap.from(", "gsap.timeline("},
			Resources: []Resource{
				{URL: "https://cdnjs.cloudflare.com/ajax/libs/gsap/3.12.5/gsap.min.js", Placement: PlacementBodyClose, Tag: TagScript},
			},
		},
		{
			Name:       "google-fonts",
			Signatures: []string{"fonts.googleapis.com"},
			Resources: []Resource{
				{URL: "https://fonts.googleapis.com", Placement: PlacementHead, Tag: TagLink, Attrs: `rel="preconnect"`},
				{URL: "https://fonts.gstatic.com", Placement: PlacementHead, Tag: TagLink, Attrs: `rel="preconnect" crossorigin`},
			},
		},
	}
}
